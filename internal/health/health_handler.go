package health

import (
	"net/http"

	"go-attendgate/internal/shared/apperror"
	"go-attendgate/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Liveness(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
}

func (h *Handler) SyncStats(c *gin.Context) {
	stats, err := h.service.AttendanceStats(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(apperror.ErrStoreUnavailable)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, stats, nil)
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Liveness)
	r.GET("/health/sync", h.SyncStats)
}
