package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/emrekole/takip/internal/auth"
)

type stubResolver struct {
	user *auth.User
	err  error

	gotToken string
}

func (s *stubResolver) Resolve(_ context.Context, token string) (*auth.User, error) {
	s.gotToken = token
	return s.user, s.err
}

func okHandler(t *testing.T, want *auth.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, want, UserFrom(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser_BearerHeader(t *testing.T) {
	u := &auth.User{ID: uuid.New(), Status: auth.StatusActive}
	resolver := &stubResolver{user: u}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok123")

	rec := httptest.NewRecorder()
	NewAuthenticator(resolver).RequireUser(okHandler(t, u)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok123", resolver.gotToken)
}

func TestRequireUser_Cookie(t *testing.T) {
	u := &auth.User{ID: uuid.New()}
	resolver := &stubResolver{user: u}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok456"})

	rec := httptest.NewRecorder()
	NewAuthenticator(resolver).RequireUser(okHandler(t, u)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok456", resolver.gotToken)
}

func TestRequireUser_HeaderBeatsCookie(t *testing.T) {
	u := &auth.User{ID: uuid.New()}
	resolver := &stubResolver{user: u}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-tok")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-tok"})

	rec := httptest.NewRecorder()
	NewAuthenticator(resolver).RequireUser(okHandler(t, u)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "header-tok", resolver.gotToken)
}

func TestRequireUser_MissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	NewAuthenticator(&stubResolver{}).RequireUser(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUser_InvalidSession(t *testing.T) {
	resolver := &stubResolver{err: auth.ErrInvalidSession}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer stale")

	rec := httptest.NewRecorder()
	NewAuthenticator(resolver).RequireUser(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUser_Suspended(t *testing.T) {
	resolver := &stubResolver{err: auth.ErrSuspended}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok")

	rec := httptest.NewRecorder()
	NewAuthenticator(resolver).RequireUser(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	type testCase struct {
		name string
		user *auth.User
		want int
	}

	tests := []testCase{
		{name: "AdminRole", user: &auth.User{Role: auth.RoleAdmin}, want: http.StatusOK},
		{name: "SuperAdminRole", user: &auth.User{Role: auth.RoleSuperAdmin}, want: http.StatusOK},
		{name: "LegacyFlag", user: &auth.User{Role: auth.RoleUser, IsAdmin: true}, want: http.StatusOK},
		{name: "PlainUser", user: &auth.User{Role: auth.RoleUser}, want: http.StatusForbidden},
		{name: "NoUser", user: nil, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), userKey, tt.user))
			}

			rec := httptest.NewRecorder()
			NewAuthenticator(&stubResolver{}).RequireAdmin(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
