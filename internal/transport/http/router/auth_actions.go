package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ligueylu-backend/internal/core/auth"
	"ligueylu-backend/internal/domain"
	"ligueylu-backend/internal/service"
	"ligueylu-backend/pkg/utils"
)

// /auth/login（公共） + /me（鉴权）
func mountAuthActions(api, authed *gin.RouterGroup, svc *service.ProviderService, jwter *auth.JWTer) {
	ezPublic := New(api)

	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type loginOut struct {
		Token    string           `json:"token"`
		Provider *domain.Provider `json:"provider"`
	}
	RegisterAction(ezPublic, Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			p, err := svc.GetByEmail(c.Request.Context(), in.Email)
			if err != nil {
				// 不区分“账号不存在”和“密码错误”
				return loginOut{}, Unauthorized("invalid credentials")
			}
			if !utils.CheckPassword(in.Password, p.PasswordHash) {
				return loginOut{}, Unauthorized("invalid credentials")
			}
			tok, err := jwter.Issue(p.ID, p.Role)
			if err != nil || tok == "" {
				return loginOut{}, Internal("issue token failed", err)
			}
			return loginOut{Token: tok, Provider: p}, nil
		},
	})

	ezAuth := New(authed)
	RegisterAction(ezAuth, Action[struct{}, *domain.Provider]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Provider, error) {
			return svc.GetByID(c.Request.Context(), c.GetString("userId"))
		},
	})
}
