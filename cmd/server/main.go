package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/api"
	"github.com/skywebdev/server/internal/auth"
	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain/admins"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
	"github.com/skywebdev/server/internal/domain/pricing"
	"github.com/skywebdev/server/internal/domain/projects"
	"github.com/skywebdev/server/internal/domain/teams"
	"github.com/skywebdev/server/internal/email"
	"github.com/skywebdev/server/internal/media"
	mongodb "github.com/skywebdev/server/internal/storage/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("env", cfg.Environment).Msg("starting skyweb server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	repo := mongodb.NewRepository(client, cfg.Database.Database)
	if err := repo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("index bootstrap failed")
	}
	cancel()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("database disconnect failed")
		}
	}()

	store, err := media.NewMinioStore(cfg.Media, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("object store init failed")
	}

	mailer, err := email.NewService(cfg.Email, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("email service init failed")
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	svcs := api.Services{
		Admins:      admins.NewService(repo.Admins(), tokens, logger),
		Teams:       teams.NewService(repo.Teams(), store, logger),
		Projects:    projects.NewService(repo.Projects(), store, logger),
		Pricing:     pricing.NewService(repo.Pricing(), store, logger),
		Internships: internships.NewService(repo.Internships(), store, repo.EnrollmentPurger(), logger),
		Enrollments: enrollments.NewService(repo.Enrollments(), repo.PostingStore(), mailer, logger),
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, svcs, tokens, repo, logger),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	shutdown(server, logger)
}

func shutdown(server *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
