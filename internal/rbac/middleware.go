package rbac

import (
	"log/slog"
	"net/http"

	"github.com/studio-kirana/kirana-erp/internal/platform/httpx"
	"github.com/studio-kirana/kirana-erp/internal/shared"
)

// Middleware wires the capability gate into the HTTP router.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireRole rejects requests whose session lacks all of the given roles.
// An empty role list only requires an authenticated session.
func (m Middleware) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := shared.UserFromContext(r.Context())
			if !ok {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !m.Service.Allows(r.Context(), userID, roles...) {
				if m.Logger != nil {
					m.Logger.Warn("access denied",
						slog.Int64("user_id", userID),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
