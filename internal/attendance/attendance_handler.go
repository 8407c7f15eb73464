package attendance

import (
	"net/http"
	"strconv"

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func clientMeta(c *gin.Context) (ip, userAgent *string) {
	if v := c.ClientIP(); v != "" {
		ip = &v
	}
	if v := c.Request.UserAgent(); v != "" {
		userAgent = &v
	}
	return ip, userAgent
}

// sessionEmployeeID mengambil identitas dari klaim JWT yang dipasang
// AuthMiddleware. Identitas tidak pernah diterima dari body request.
func sessionEmployeeID(c *gin.Context) (string, bool) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		httpErr := apperror.ToHTTP(apperror.ErrUnauthorized)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return "", false
	}
	return employeeID, true
}

func (h *Handler) ClockIn(c *gin.Context) {
	employeeID, ok := sessionEmployeeID(c)
	if !ok {
		return
	}

	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	req.EmployeeID = employeeID
	req.IPAddress, req.UserAgent = clientMeta(c)

	resp, err := h.service.ClockIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) VerifyAndClockIn(c *gin.Context) {
	var req VerifyClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	req.IPAddress, req.UserAgent = clientMeta(c)

	resp, err := h.service.VerifyAndClockIn(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	employeeID, ok := sessionEmployeeID(c)
	if !ok {
		return
	}

	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	req.EmployeeID = employeeID
	req.IPAddress, req.UserAgent = clientMeta(c)

	resp, err := h.service.ClockOut(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetStatus(c *gin.Context) {
	employeeID, ok := sessionEmployeeID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetStatus(c.Request.Context(), employeeID, c.Query("date"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	employeeID, ok := sessionEmployeeID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	resp, err := h.service.GetHistory(c.Request.Context(), employeeID, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
