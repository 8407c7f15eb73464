package attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	attendanceerrors "go-attendgate/internal/attendance/errors"
	"go-attendgate/internal/middleware"
	"go-attendgate/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	clockInResp  *AttendanceResponse
	clockInErr   error
	clockOutResp *ClockOutResponse
	clockOutErr  error
	statusResp   *StatusResponse
	gotClockIn   *ClockInRequest
	gotVerify    *VerifyClockInRequest
	gotStatusFor string
}

func (f *fakeService) ClockIn(ctx context.Context, req ClockInRequest) (*AttendanceResponse, error) {
	f.gotClockIn = &req
	return f.clockInResp, f.clockInErr
}

func (f *fakeService) VerifyAndClockIn(ctx context.Context, req VerifyClockInRequest) (*AttendanceResponse, error) {
	f.gotVerify = &req
	return f.clockInResp, f.clockInErr
}

func (f *fakeService) ClockOut(ctx context.Context, req ClockOutRequest) (*ClockOutResponse, error) {
	return f.clockOutResp, f.clockOutErr
}

func (f *fakeService) GetStatus(ctx context.Context, employeeID, date string) (*StatusResponse, error) {
	f.gotStatusFor = employeeID
	return f.statusResp, nil
}

func (f *fakeService) GetHistory(ctx context.Context, employeeID string, limit int) ([]HistoryItem, error) {
	return nil, nil
}

func newHandlerRouter(svc Service, authn gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewHandler(svc), authn, nil)
	return r
}

// sessionStub menggantikan AuthMiddleware: langsung memasang klaim
// employee_id seolah token sudah diverifikasi.
func sessionStub(employeeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("employee_id", employeeID)
	}
}

func signedToken(t *testing.T, employeeID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": employeeID,
		"role":        "employee",
		"exp":         time.Now().Add(time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestHandler_ClockIn_Created(t *testing.T) {
	svc := &fakeService{clockInResp: &AttendanceResponse{ID: "att-1", Status: StatusOpen}}
	r := newHandlerRouter(svc, sessionStub("emp-1"))

	body := `{
		"latitude": 3.1390,
		"longitude": 101.6869,
		"accuracy_meters": 12.5,
		"device_fingerprint": "fp-kiosk-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "kiosk/1.0")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), "att-1")

	// Identitas dari sesi; IP dan user agent dari request, bukan dari body.
	require.NotNil(t, svc.gotClockIn)
	assert.Equal(t, "emp-1", svc.gotClockIn.EmployeeID)
	require.NotNil(t, svc.gotClockIn.UserAgent)
	assert.Equal(t, "kiosk/1.0", *svc.gotClockIn.UserAgent)
}

func TestHandler_ClockIn_RejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeService{clockInResp: &AttendanceResponse{ID: "att-1"}}
	r := newHandlerRouter(svc, middleware.AuthMiddleware())

	// Caller anonim yang mengirim ic_number di body tidak boleh bisa
	// meng-clock-in siapa pun.
	body := `{
		"ic_number": "900101-14-5678",
		"latitude": 3.1390,
		"longitude": 101.6869,
		"device_fingerprint": "fp-kiosk-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, svc.gotClockIn)
}

func TestHandler_ClockIn_BearerTokenIdentity(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeService{clockInResp: &AttendanceResponse{ID: "att-1"}}
	r := newHandlerRouter(svc, middleware.AuthMiddleware())

	body := `{
		"latitude": 3.1390,
		"longitude": 101.6869,
		"device_fingerprint": "fp-kiosk-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "emp-42"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.gotClockIn)
	assert.Equal(t, "emp-42", svc.gotClockIn.EmployeeID)
}

func TestHandler_VerifyClockIn_OpenToKiosk(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := &fakeService{clockInResp: &AttendanceResponse{ID: "att-1", SessionToken: "sess"}}
	r := newHandlerRouter(svc, middleware.AuthMiddleware())

	// Jalur verify tidak butuh token: keberhasilannya yang membuka sesi.
	body := `{
		"ic_number": "900101-14-5678",
		"latitude": 3.1390,
		"longitude": 101.6869,
		"device_fingerprint": "fp-kiosk-1",
		"face_confidence": 0.93
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/verify-clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.gotVerify)
	assert.Equal(t, "900101-14-5678", svc.gotVerify.ICNumber)
	assert.Contains(t, w.Body.String(), "session_token")
}

func TestHandler_ClockIn_MissingField(t *testing.T) {
	r := newHandlerRouter(&fakeService{}, sessionStub("emp-1"))

	body := `{"device_fingerprint": "fp-kiosk-1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandler_ClockIn_Conflict(t *testing.T) {
	svc := &fakeService{clockInErr: attendanceerrors.ErrAlreadyClockedIn}
	r := newHandlerRouter(svc, sessionStub("emp-1"))

	body := `{
		"latitude": 3.1390,
		"longitude": 101.6869,
		"device_fingerprint": "fp-kiosk-1"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/clock-in", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), apperror.CodeAlreadyClockedIn)
}

func TestHandler_GetStatus_RejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newHandlerRouter(&fakeService{}, middleware.AuthMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/status", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_GetStatus_OK(t *testing.T) {
	svc := &fakeService{statusResp: &StatusResponse{State: StateNotClockedIn, AttendanceDate: "2025-06-02"}}
	r := newHandlerRouter(svc, sessionStub("emp-1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), StateNotClockedIn)
	assert.Equal(t, "emp-1", svc.gotStatusFor)
}
