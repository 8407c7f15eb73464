package employee

import (
	"go-attendgate/internal/middleware"
	"go-attendgate/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(rbac.Authorize(enforcer, "employee", "manage"))
	{
		employees.GET("", h.GetAll)
		employees.GET("/options", h.GetOptions)
		employees.GET("/:id", h.GetByID)
		employees.POST("", h.Create)
		employees.PUT("/:id", h.Update)
	}
}
