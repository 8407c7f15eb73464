package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enforcer, err := NewEnforcer("../../configs/rbac_model.conf", "../../configs/rbac_policy.csv")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected",
		func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
		},
		Authorize(enforcer, "device_blacklist", "manage"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	r := newTestRouter(t, "admin")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorize_EmployeeDenied(t *testing.T) {
	r := newTestRouter(t, "employee")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorize_MissingRole(t *testing.T) {
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
