package middleware

import (
	"context"
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain/admins"
)

type contextKey string

const adminContextKey contextKey = "admin"

// AdminLookup loads the account behind a verified token. Satisfied by
// admins.Repository; token claims alone are not trusted because an account
// can be deactivated while its token is still live.
type AdminLookup interface {
	GetByID(ctx context.Context, id string) (*admins.Admin, error)
}

// RequireAuth verifies the bearer token and loads the admin account into the
// request context. Missing, invalid, or orphaned tokens get a 401, as do
// deactivated accounts.
func RequireAuth(tokens *auth.TokenManager, lookup AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			admin, err := lookup.GetByID(r.Context(), claims.Subject)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if !admin.IsActive {
				respond.Fail(w, http.StatusUnauthorized, "account is deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth loads the admin account when a valid bearer token is present
// and otherwise lets the request through anonymously. Used by routes whose
// behavior depends on who, if anyone, is calling.
func OptionalAuth(tokens *auth.TokenManager, lookup AdminLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			admin, err := lookup.GetByID(r.Context(), claims.Subject)
			if err != nil || !admin.IsActive {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a handler to admins holding one of the allowed roles.
// Must run inside RequireAuth.
func RequireRole(allowed ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := AdminFrom(r)
			if !ok {
				respond.Fail(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !auth.RoleAllowed(admin.Role, allowed...) {
				respond.Fail(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminFrom returns the authenticated admin placed by RequireAuth.
func AdminFrom(r *http.Request) (*admins.Admin, bool) {
	admin, ok := r.Context().Value(adminContextKey).(*admins.Admin)
	return admin, ok
}
