// Package api wires the HTTP surface.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/api/handlers"
	"github.com/skywebdev/server/internal/api/middleware"
	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain/admins"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
	"github.com/skywebdev/server/internal/domain/pricing"
	"github.com/skywebdev/server/internal/domain/projects"
	"github.com/skywebdev/server/internal/domain/teams"
	"github.com/skywebdev/server/internal/storage"
)

// Services carries the constructed domain services into the router. The
// caller owns their lifecycles.
type Services struct {
	Admins      *admins.Service
	Teams       *teams.Service
	Projects    *projects.Service
	Pricing     *pricing.Service
	Internships *internships.Service
	Enrollments *enrollments.Service
}

func NewRouter(cfg config.Config, svcs Services, tokens *auth.TokenManager, repo storage.Repository, logger zerolog.Logger) http.Handler {
	env := cfg.Environment

	authHandler := handlers.NewAuthHandler(svcs.Admins, env)
	teamsHandler := handlers.NewTeamsHandler(svcs.Teams, env)
	projectsHandler := handlers.NewProjectsHandler(svcs.Projects, env)
	pricingHandler := handlers.NewPricingHandler(svcs.Pricing, env)
	internshipsHandler := handlers.NewInternshipsHandler(svcs.Internships, svcs.Enrollments, env)
	enrollmentsHandler := handlers.NewEnrollmentsHandler(svcs.Enrollments, env)

	requireAuth := middleware.RequireAuth(tokens, repo.Admins())
	optionalAuth := middleware.OptionalAuth(tokens, repo.Admins())
	requireAdmin := middleware.RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin)

	// Mutations on content entities need an admin or super-admin token.
	protect := func(h http.HandlerFunc) http.Handler {
		return requireAuth(requireAdmin(h))
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Health())

	mux.Handle("/api/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: optionalAuth(http.HandlerFunc(authHandler.Register)),
	}))
	mux.Handle("/api/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))
	mux.Handle("/api/auth/me", methodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(authHandler.Me)),
	}))
	mux.Handle("/api/auth/update-password", methodMux(map[string]http.Handler{
		http.MethodPut: requireAuth(http.HandlerFunc(authHandler.UpdatePassword)),
	}))

	mux.Handle("/api/teams", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(teamsHandler.List),
		http.MethodPost: protect(teamsHandler.Create),
	}))
	mux.Handle("/api/teams/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(teamsHandler.Get),
		http.MethodPut:    protect(teamsHandler.Update),
		http.MethodDelete: protect(teamsHandler.Delete),
	}))

	mux.Handle("/api/projects", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(projectsHandler.List),
		http.MethodPost: protect(projectsHandler.Create),
	}))
	mux.Handle("/api/projects/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(projectsHandler.Get),
		http.MethodPut:    protect(projectsHandler.Update),
		http.MethodDelete: protect(projectsHandler.Delete),
	}))

	mux.Handle("/api/pricing", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(pricingHandler.List),
		http.MethodPost: protect(pricingHandler.Create),
	}))
	mux.Handle("/api/pricing/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(pricingHandler.Get),
		http.MethodPut:    protect(pricingHandler.Update),
		http.MethodDelete: protect(pricingHandler.Delete),
	}))

	mux.Handle("/api/internships", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(internshipsHandler.List),
		http.MethodPost: protect(internshipsHandler.Create),
	}))
	mux.Handle("/api/internships/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(internshipsHandler.Get),
		http.MethodPut:    protect(internshipsHandler.Update),
		http.MethodDelete: protect(internshipsHandler.Delete),
	}))
	mux.Handle("/api/internships/{id}/enrollments", methodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(internshipsHandler.ListEnrollments)),
	}))

	mux.Handle("/api/enrollments", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(enrollmentsHandler.Apply),
		http.MethodGet:  requireAuth(http.HandlerFunc(enrollmentsHandler.List)),
	}))
	mux.Handle("/api/enrollments/stats", methodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(enrollmentsHandler.Stats)),
	}))
	mux.Handle("/api/enrollments/{id}", methodMux(map[string]http.Handler{
		http.MethodGet:    requireAuth(http.HandlerFunc(enrollmentsHandler.Get)),
		http.MethodPut:    requireAuth(http.HandlerFunc(enrollmentsHandler.UpdateStatus)),
		http.MethodDelete: requireAuth(http.HandlerFunc(enrollmentsHandler.Delete)),
	}))
	// Alias kept for clients that address the status sub-resource directly.
	mux.Handle("/api/enrollments/{id}/status", methodMux(map[string]http.Handler{
		http.MethodPut: requireAuth(http.HandlerFunc(enrollmentsHandler.UpdateStatus)),
	}))

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.Server.AllowedOrigins, env, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Recover(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
