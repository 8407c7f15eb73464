package auth

import (
	"go-attendgate/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, loginLimiter gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		login := authGroup.Group("")
		if loginLimiter != nil {
			login.Use(loginLimiter)
		}
		login.POST("/login", h.Login)

		authGroup.POST("/refresh", h.RefreshToken)
		authGroup.GET("/me", middleware.AuthMiddleware(), h.GetMe)
	}
}
