package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ligueylu-backend/internal/core/auth"
	"ligueylu-backend/internal/core/server"
	"ligueylu-backend/internal/service"
	mdw "ligueylu-backend/internal/transport/http/middleware"
)

// NewAdminEngine builds the ops-facing engine: provider administration
// behind an admin-role JWT, plus health and prometheus exposition.
func NewAdminEngine(l *zap.Logger, svc *service.ProviderService, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, "admin"))

	MountAllAdmin(admin)
	mountAdminActions(admin, svc)

	return r
}
