package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywebdev/server/internal/api/middleware"
	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/admins"
)

type fakeAdminRepo struct {
	byID    map[string]*admins.Admin
	byEmail map[string]*admins.Admin
	nextID  int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: make(map[string]*admins.Admin), byEmail: make(map[string]*admins.Admin)}
}

func (r *fakeAdminRepo) Insert(ctx context.Context, admin *admins.Admin) (string, error) {
	if _, ok := r.byEmail[admin.Email]; ok {
		return "", domain.ErrDuplicate
	}
	r.nextID++
	id := strconv.Itoa(r.nextID)
	stored := *admin
	stored.ID = id
	r.byID[id] = &stored
	r.byEmail[stored.Email] = &stored
	return id, nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*admins.Admin, error) {
	admin, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	admin, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeAdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	admin, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	admin.PasswordHash = passwordHash
	return nil
}

func authTestSetup(t *testing.T) (http.Handler, *fakeAdminRepo, *auth.TokenManager) {
	t.Helper()
	repo := newFakeAdminRepo()
	tokens := auth.NewTokenManager("test-secret-key", time.Hour, "skyweb-test")
	svc := admins.NewService(repo, tokens, zerolog.Nop())
	handler := NewAuthHandler(svc, "test")

	register := middleware.OptionalAuth(tokens, repo)(http.HandlerFunc(handler.Register))
	return register, repo, tokens
}

func postJSON(t *testing.T, handler http.Handler, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()
	var env respond.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRegisterBootstrap(t *testing.T) {
	register, repo, _ := authTestSetup(t)

	// First registration is public and yields a super-admin.
	w := postJSON(t, register, "/api/auth/register", `{"name":"Root","email":"root@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	env := envelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "super-admin", repo.byEmail["root@example.com"].Role)

	// Once an admin exists, anonymous registration is rejected.
	w = postJSON(t, register, "/api/auth/register", `{"name":"Two","email":"two@example.com","password":"secret2"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRequiresSuperAdminAfterBootstrap(t *testing.T) {
	register, repo, tokens := authTestSetup(t)

	w := postJSON(t, register, "/api/auth/register", `{"name":"Root","email":"root@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	superToken, err := tokens.Issue(repo.byEmail["root@example.com"].ID, "super-admin")
	require.NoError(t, err)

	// Super-admin can register further admins, who get the plain role.
	w = postJSON(t, register, "/api/auth/register", `{"name":"Two","email":"two@example.com","password":"secret2"}`, superToken)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", repo.byEmail["two@example.com"].Role)

	// A plain admin cannot.
	adminToken, err := tokens.Issue(repo.byEmail["two@example.com"].ID, "admin")
	require.NoError(t, err)
	w = postJSON(t, register, "/api/auth/register", `{"name":"Three","email":"three@example.com","password":"secret3"}`, adminToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	register, repo, tokens := authTestSetup(t)

	w := postJSON(t, register, "/api/auth/register", `{"name":"Root","email":"root@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	superToken, _ := tokens.Issue(repo.byEmail["root@example.com"].ID, "super-admin")
	w = postJSON(t, register, "/api/auth/register", `{"name":"Root","email":"root@example.com","password":"secret1"}`, superToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := envelope(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "already exists")
}

func TestLoginAndMe(t *testing.T) {
	repo := newFakeAdminRepo()
	tokens := auth.NewTokenManager("test-secret-key", time.Hour, "skyweb-test")
	svc := admins.NewService(repo, tokens, zerolog.Nop())
	handler := NewAuthHandler(svc, "test")

	_, _, err := svc.Register(context.Background(), admins.RegisterParams{Name: "Root", Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)

	w := postJSON(t, http.HandlerFunc(handler.Login), "/api/auth/login", `{"email":"root@example.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loginBody struct {
		Data struct {
			Token string `json:"token"`
			Admin struct {
				Email        string `json:"email"`
				PasswordHash string `json:"passwordHash"`
			} `json:"admin"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginBody))
	assert.NotEmpty(t, loginBody.Data.Token)
	assert.Equal(t, "root@example.com", loginBody.Data.Admin.Email)
	// The hash must never serialize.
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "password_hash")

	me := middleware.RequireAuth(tokens, repo)(http.HandlerFunc(handler.Me))
	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+loginBody.Data.Token)
	rec := httptest.NewRecorder()
	me.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "root@example.com")
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newFakeAdminRepo()
	tokens := auth.NewTokenManager("test-secret-key", time.Hour, "skyweb-test")
	svc := admins.NewService(repo, tokens, zerolog.Nop())
	handler := NewAuthHandler(svc, "test")

	w := postJSON(t, http.HandlerFunc(handler.Login), "/api/auth/login", `{"email":"ghost@example.com","password":"secret1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, envelope(t, w).Error, "invalid credentials")
}

func TestUpdatePasswordMismatch(t *testing.T) {
	repo := newFakeAdminRepo()
	tokens := auth.NewTokenManager("test-secret-key", time.Hour, "skyweb-test")
	svc := admins.NewService(repo, tokens, zerolog.Nop())
	handler := NewAuthHandler(svc, "test")

	_, token, err := svc.Register(context.Background(), admins.RegisterParams{Name: "Root", Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)

	update := middleware.RequireAuth(tokens, repo)(http.HandlerFunc(handler.UpdatePassword))
	r := httptest.NewRequest(http.MethodPut, "/api/auth/update-password", strings.NewReader(`{"currentPassword":"wrong12","newPassword":"newsecret"}`))
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	update.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, envelope(t, w).Error, "current password")
}
