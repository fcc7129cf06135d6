package middleware

import (
	"net/http"

	"github.com/litera-id/litera-backend/api/responses"
	"github.com/litera-id/litera-backend/pkg/enums"
	pkgerrors "github.com/litera-id/litera-backend/pkg/errors"
	"github.com/litera-id/litera-backend/pkg/logger"
)

// RequireRole rejects authenticated principals whose role is not in the
// allow-list.
func RequireRole(logg *logger.Logger, only ...enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, allowed := range only {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
		})
	}
}

// ForbidRole rejects authenticated principals whose role is in the
// deny-list.
func ForbidRole(logg *logger.Logger, except ...enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, denied := range except {
				if role == denied {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role not permitted"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
