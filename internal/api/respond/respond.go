// Package respond writes the API's JSON envelope and maps domain errors to
// HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/domain"
)

// Envelope is the uniform response shape. Data and Error are mutually
// exclusive; Pagination rides along on list responses.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a successful response.
func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

// OKMessage writes a successful response carrying a human-readable message.
func OKMessage(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{Success: true, Message: message, Data: data})
}

// List writes a successful paginated response.
func List(w http.ResponseWriter, data any, p Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

// Fail writes a failure with an explicit status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// Error maps err to a status and message. Unrecognized errors are logged and
// reported as a generic server error; the underlying message only leaks in
// development and test environments.
func Error(w http.ResponseWriter, r *http.Request, err error, env string) {
	var validationErr domain.ValidationError
	var conflictErr domain.ConflictError
	var externalErr domain.ExternalServiceError

	switch {
	case errors.As(err, &validationErr):
		Fail(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &conflictErr):
		Fail(w, http.StatusBadRequest, conflictErr.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrAccountDeactivated):
		Fail(w, http.StatusUnauthorized, "account is deactivated")
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		Fail(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrNotFound):
		Fail(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrDuplicate):
		Fail(w, http.StatusBadRequest, "resource already exists")
	case errors.As(err, &externalErr):
		zerolog.Ctx(r.Context()).Error().Err(err).Str("service", externalErr.Service).Msg("external service failure")
		if externalErr.Required {
			Fail(w, http.StatusBadGateway, "a required upstream service is unavailable")
		} else {
			Fail(w, http.StatusInternalServerError, "internal server error")
		}
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
		if env == "development" || env == "test" {
			Fail(w, http.StatusInternalServerError, err.Error())
		} else {
			Fail(w, http.StatusInternalServerError, "internal server error")
		}
	}
}
