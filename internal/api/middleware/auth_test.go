package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/admins"
)

type fakeLookup struct {
	accounts map[string]*admins.Admin
}

func (l *fakeLookup) GetByID(ctx context.Context, id string) (*admins.Admin, error) {
	admin, ok := l.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return admin, nil
}

func testSetup() (*auth.TokenManager, *fakeLookup) {
	tokens := auth.NewTokenManager("test-secret-key", time.Hour, "skyweb-test")
	lookup := &fakeLookup{accounts: map[string]*admins.Admin{
		"active":   {ID: "active", Role: string(auth.RoleAdmin), IsActive: true},
		"super":    {ID: "super", Role: string(auth.RoleSuperAdmin), IsActive: true},
		"disabled": {ID: "disabled", Role: string(auth.RoleAdmin), IsActive: false},
	}}
	return tokens, lookup
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	tokens, lookup := testSetup()

	tests := []struct {
		name       string
		authHeader func(t *testing.T) string
		wantStatus int
	}{
		{
			name:       "no token",
			authHeader: func(t *testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: func(t *testing.T) string { return "Token abc" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: func(t *testing.T) string { return "Bearer not.a.jwt" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token for deleted account",
			authHeader: func(t *testing.T) string {
				token, err := tokens.Issue("ghost", string(auth.RoleAdmin))
				require.NoError(t, err)
				return "Bearer " + token
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			authHeader: func(t *testing.T) string {
				token, err := tokens.Issue("disabled", string(auth.RoleAdmin))
				require.NoError(t, err)
				return "Bearer " + token
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "valid token",
			authHeader: func(t *testing.T) string {
				token, err := tokens.Issue("active", string(auth.RoleAdmin))
				require.NoError(t, err)
				return "Bearer " + token
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := RequireAuth(tokens, lookup)(okHandler(&called))

			r := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if header := tt.authHeader(t); header != "" {
				r.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}

func TestRequireAuthExposesAdmin(t *testing.T) {
	tokens, lookup := testSetup()

	var got *admins.Admin
	handler := RequireAuth(tokens, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = AdminFrom(r)
	}))

	token, err := tokens.Issue("super", string(auth.RoleSuperAdmin))
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, got)
	assert.Equal(t, "super", got.ID)
}

func TestRequireRole(t *testing.T) {
	tokens, lookup := testSetup()

	protected := func(allowed ...auth.Role) (http.Handler, *bool) {
		called := false
		return RequireAuth(tokens, lookup)(RequireRole(allowed...)(okHandler(&called))), &called
	}

	t.Run("role in allowed set passes", func(t *testing.T) {
		handler, called := protected(auth.RoleAdmin, auth.RoleSuperAdmin)
		token, _ := tokens.Issue("active", string(auth.RoleAdmin))
		r := httptest.NewRequest(http.MethodDelete, "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *called)
	})

	t.Run("role outside allowed set gets 403", func(t *testing.T) {
		handler, called := protected(auth.RoleSuperAdmin)
		token, _ := tokens.Issue("active", string(auth.RoleAdmin))
		r := httptest.NewRequest(http.MethodDelete, "/protected", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, *called)
	})

	t.Run("no auth context gets 401", func(t *testing.T) {
		called := false
		handler := RequireRole(auth.RoleAdmin)(okHandler(&called))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, called)
	})
}

func TestOptionalAuth(t *testing.T) {
	tokens, lookup := testSetup()

	var got *admins.Admin
	var ok bool
	handler := OptionalAuth(tokens, lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = AdminFrom(r)
	}))

	// Anonymous requests pass through without an admin.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/register", nil))
	assert.False(t, ok)
	assert.Nil(t, got)

	token, err := tokens.Issue("super", string(auth.RoleSuperAdmin))
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, "/register", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, "super", got.ID)
}
