package device

import (
	"net/http"
	"time"

	"go-attendgate/internal/shared/apperror"
	"go-attendgate/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler melayani administrasi blacklist device. Entri blacklist dikelola
// admin; gating engine hanya membacanya lewat Policy.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	entry := &BlacklistEntry{
		ID:          uuid.New(),
		Fingerprint: req.Fingerprint,
		IsPermanent: req.IsPermanent,
		Reason:      req.Reason,
	}

	if req.BlockedUntil != nil {
		until, err := time.Parse(time.RFC3339, *req.BlockedUntil)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "blocked_until must be RFC3339", nil)
			return
		}
		entry.BlockedUntil = &until
	}

	if !entry.IsPermanent && entry.BlockedUntil == nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Non-permanent blocks need blocked_until", nil)
		return
	}

	if err := h.repo.Create(c.Request.Context(), entry); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, mapToResponse(*entry), nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid blacklist entry ID", nil)
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id}, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	rows, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	res := make([]BlacklistResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	response.Success(c, http.StatusOK, res, nil)
}
