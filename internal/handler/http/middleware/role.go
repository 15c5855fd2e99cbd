package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
)

// RequirePermission checks if the authenticated role has a specific permission
func RequirePermission(permission employee.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if role == "" {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !employee.HasPermission(role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but role is '%s'", permission, role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
