package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ligueylu-backend/internal/core/auth"
	"ligueylu-backend/internal/core/cache"
	"ligueylu-backend/internal/service"
	mdw "ligueylu-backend/internal/transport/http/middleware"
)

// NewAPIEngine builds the public provider API. ch may be nil when no
// redis is configured; cached read paths then go straight to the DB.
func NewAPIEngine(l *zap.Logger, svc *service.ProviderService, jwter *auth.JWTer, ch *cache.Cache) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	api := r.Group("/api/v1")

	// 统一注册器（自动发现模块）
	MountAllAPI(api)

	// 鉴权分组（挂 userId/role 的路由必须在这里）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	mountAuthActions(api, authed, svc, jwter)
	mountProviderActions(api, authed, svc, ch)

	return r
}
