package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protected(jwtService jwt.Service, permission employee.Permission) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Employee", EmployeeIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
	return jwtauth.Verifier(jwtService.JWTAuth())(
		AuthRequired(jwtService)(
			RequirePermission(permission)(final)))
}

func TestAuthRequiredAndPermission(t *testing.T) {
	jwtService := jwt.NewJWTService("middleware-secret", "1h")
	hrToken, exp, err := jwtService.GenerateAccessToken("hr-1", "hr@example.com", employee.RoleHR)
	require.NoError(t, err)
	empToken, _, err := jwtService.GenerateAccessToken("emp-1", "emp@example.com", employee.RoleEmployee)
	require.NoError(t, err)

	do := func(token string, permission employee.Permission) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		protected(jwtService, permission).ServeHTTP(rec, req)
		return rec
	}

	rec := do(hrToken, employee.PermissionLatePolicyEvaluate)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "hr-1", rec.Header().Get("X-Employee"))

	assert.Equal(t, http.StatusForbidden, do(empToken, employee.PermissionLatePolicyEvaluate).Code)
	assert.Equal(t, http.StatusUnauthorized, do("", employee.PermissionAttendanceViewOwn).Code)
	assert.Equal(t, http.StatusUnauthorized, do("not-a-jwt", employee.PermissionAttendanceViewOwn).Code)

	jwtService.RevokeToken(hrToken, exp)
	assert.Equal(t, http.StatusUnauthorized, do(hrToken, employee.PermissionLatePolicyEvaluate).Code)
}
