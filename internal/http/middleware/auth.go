package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/emrekole/takip/internal/auth"
	"github.com/emrekole/takip/internal/http/respond"
)

// SessionCookie is the fallback token carrier for browser clients that do not
// set the Authorization header.
const SessionCookie = "auth_token"

type ctxKey int

const userKey ctxKey = iota

// Resolver is the slice of the auth service the middleware depends on.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*auth.User, error)
}

type Authenticator struct {
	resolver Resolver
}

func NewAuthenticator(resolver Resolver) *Authenticator {
	return &Authenticator{resolver: resolver}
}

// RequireUser resolves the request's token to a user and stores it in the
// context. Missing or invalid tokens get 401; a suspended account gets 403.
func (a *Authenticator) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := Token(r)
		if token == "" {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}

		u, err := a.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrSuspended) {
				respond.Error(w, http.StatusForbidden, "account suspended")
				return
			}

			respond.Error(w, http.StatusUnauthorized, "invalid session")

			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// RequireAdmin gates admin endpoints. It must run after RequireUser.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFrom(r.Context())
		if u == nil || !u.Admin() {
			respond.Error(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user, or nil outside RequireUser.
func UserFrom(ctx context.Context) *auth.User {
	u, _ := ctx.Value(userKey).(*auth.User)
	return u
}

// Token extracts the request's session token. The Authorization header wins
// when present, even if malformed; the cookie is only consulted without one.
func Token(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}

		return ""
	}

	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}

	return ""
}
