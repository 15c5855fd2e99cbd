package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	employeeIDKey contextKey = "employee_id"
	roleKey       contextKey = "role"
)

// AuthRequired accepts verified, unrevoked access tokens and puts the
// employee id and role on the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			employeeID, ok := claims["employee_id"].(string)
			if !ok || employeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), employeeIDKey, employeeID)
			ctx = context.WithValue(ctx, roleKey, employee.Role(role))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeIDFromContext returns the authenticated employee id.
func EmployeeIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(employeeIDKey).(string)
	return id
}

// RoleFromContext returns the authenticated employee role.
func RoleFromContext(ctx context.Context) employee.Role {
	role, _ := ctx.Value(roleKey).(employee.Role)
	return role
}

// WithEmployee returns ctx carrying an authenticated employee, for handler tests.
func WithEmployee(ctx context.Context, employeeID string, role employee.Role) context.Context {
	ctx = context.WithValue(ctx, employeeIDKey, employeeID)
	return context.WithValue(ctx, roleKey, role)
}
