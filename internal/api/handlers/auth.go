package handlers

import (
	"errors"
	"net/http"

	"github.com/skywebdev/server/internal/api/middleware"
	"github.com/skywebdev/server/internal/api/respond"
	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain/admins"
)

type AuthHandler struct {
	Service *admins.Service
	Env     string
}

func NewAuthHandler(service *admins.Service, env string) *AuthHandler {
	return &AuthHandler{Service: service, Env: env}
}

type authResponse struct {
	Admin *admins.Admin `json:"admin"`
	Token string        `json:"token"`
}

// Register creates an administrator account. The endpoint is open only while
// no admin exists; once the first account is bootstrapped, registration
// requires an authenticated super-admin.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	hasAdmins, err := h.Service.HasAdmins(r.Context())
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	if hasAdmins {
		caller, ok := middleware.AdminFrom(r)
		if !ok {
			respond.Fail(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !auth.RoleAllowed(caller.Role, auth.RoleSuperAdmin) {
			respond.Fail(w, http.StatusForbidden, "only super-admins can register new admins")
			return
		}
	}

	var params admins.RegisterParams
	if err := decodeJSON(w, r, &params); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	admin, token, err := h.Service.Register(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusCreated, "admin registered successfully", authResponse{Admin: admin, Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds admins.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	admin, token, err := h.Service.Authenticate(r.Context(), creds)
	if err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "login successful", authResponse{Admin: admin, Token: token})
}

// Me returns the authenticated admin's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFrom(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	respond.OK(w, http.StatusOK, admin)
}

// UpdatePassword changes the caller's password and issues a fresh token.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFrom(r)
	if !ok {
		respond.Fail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var change admins.PasswordChange
	if err := decodeJSON(w, r, &change); err != nil {
		respond.Error(w, r, err, h.Env)
		return
	}

	token, err := h.Service.UpdatePassword(r.Context(), admin.ID, change)
	if err != nil {
		if errors.Is(err, admins.ErrPasswordMismatch) {
			respond.Fail(w, http.StatusUnauthorized, "current password is incorrect")
			return
		}
		respond.Error(w, r, err, h.Env)
		return
	}
	respond.OKMessage(w, http.StatusOK, "password updated successfully", map[string]string{"token": token})
}
