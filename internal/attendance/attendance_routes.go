package attendance

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang endpoint gating. Semua endpoint butuh sesi JWT
// kecuali verify-clock-in: itu pintu masuk kiosk, identitasnya IC number dan
// keberhasilannya justru yang menerbitkan sesi. Endpoint tulis juga
// dilindungi Idempotency-Key.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn, idempotency gin.HandlerFunc) {
	attendance := r.Group("/attendance")
	{
		verify := attendance.Group("")
		if idempotency != nil {
			verify.Use(idempotency)
		}
		verify.POST("/verify-clock-in", h.VerifyAndClockIn)

		authed := attendance.Group("")
		if authn != nil {
			authed.Use(authn)
		}

		write := authed.Group("")
		if idempotency != nil {
			write.Use(idempotency)
		}
		write.POST("/clock-in", h.ClockIn)
		write.POST("/clock-out", h.ClockOut)

		authed.GET("/status", h.GetStatus)
		authed.GET("/history", h.GetHistory)
	}
}
