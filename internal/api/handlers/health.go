package handlers

import (
	"net/http"

	"github.com/skywebdev/server/internal/api/respond"
)

// Health reports process liveness.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.OK(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
