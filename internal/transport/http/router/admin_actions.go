package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ligueylu-backend/internal/domain"
	"ligueylu-backend/internal/service"
)

func mountAdminActions(admin *gin.RouterGroup, svc *service.ProviderService) {
	ezAdmin := New(admin)

	// --- 服务商列表 ---
	type listQ struct {
		Offset int    `form:"offset,default=0"`
		Limit  int    `form:"limit,default=20"`
		Q      string `form:"q"` // 可选：按 email/name 模糊搜
	}
	type listOut struct {
		Total int64             `json:"total"`
		Items []domain.Provider `json:"items"`
	}
	RegisterAction(ezAdmin, Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/providers",
		Binder: BindQuery,
		Auth:   true,
		Roles:  []string{"admin"},
		Handler: func(c *gin.Context, in *listQ) (listOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			if in.Offset < 0 {
				in.Offset = 0
			}
			all, err := svc.List(c.Request.Context())
			if err != nil {
				return listOut{}, Internal("list providers failed", err)
			}
			if q := strings.ToLower(strings.TrimSpace(in.Q)); q != "" {
				filtered := all[:0:0]
				for _, p := range all {
					if strings.Contains(strings.ToLower(p.Email), q) ||
						strings.Contains(strings.ToLower(p.FullName), q) {
						filtered = append(filtered, p)
					}
				}
				all = filtered
			}
			total := int64(len(all))
			if in.Offset >= len(all) {
				return listOut{Total: total, Items: []domain.Provider{}}, nil
			}
			end := in.Offset + in.Limit
			if end > len(all) {
				end = len(all)
			}
			return listOut{Total: total, Items: all[in.Offset:end]}, nil
		},
	})

	// --- 激活 ---
	RegisterAction(ezAdmin, Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/providers/:id/activate",
		Binder: BindNone,
		Auth:   true,
		Roles:  []string{"admin"},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			ok, err := svc.Activate(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, err
			}
			return gin.H{"activated": ok}, nil
		},
	})

	// --- 删除 ---
	RegisterAction(ezAdmin, Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/providers/:id",
		Binder: BindNone,
		Auth:   true,
		Roles:  []string{"admin"},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Delete(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
