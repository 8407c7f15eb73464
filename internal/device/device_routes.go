package device

import (
	"go-attendgate/internal/middleware"
	"go-attendgate/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	blacklist := r.Group("/device-blacklist")
	blacklist.Use(middleware.AuthMiddleware())
	blacklist.Use(rbac.Authorize(enforcer, "device_blacklist", "manage"))
	{
		blacklist.GET("", h.GetAll)
		blacklist.POST("", h.Create)
		blacklist.DELETE("/:id", h.Delete)
	}
}
