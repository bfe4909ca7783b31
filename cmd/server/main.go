package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sentinel-defense/backend/internal/config"
	"github.com/sentinel-defense/backend/internal/handler"
	"github.com/sentinel-defense/backend/internal/logging"
	"github.com/sentinel-defense/backend/internal/repository"
	"github.com/sentinel-defense/backend/internal/service"
	"github.com/sentinel-defense/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if cfg.AuthRequired && cfg.UsesDevSecret() {
		logging.Fatal("SESSION_SECRET must be set when AUTH_REQUIRED=true")
	}

	contactRepo := repository.NewMemContactRepository()
	userRepo := repository.NewMemUserRepository()
	contactService := service.NewContactService(contactRepo)
	operatorService := service.NewOperatorService(userRepo)

	if err := operatorService.Seed(context.Background(), cfg.Operators); err != nil {
		logging.Fatal("seed operators failed", "error", err)
	}

	limiter := handler.NewRateLimiter(cfg.ContactRateLimit, cfg.TrustedProxies)
	defer limiter.Stop()

	mux := newMux(cfg, contactRepo, contactService, operatorService, limiter)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "auth_required", cfg.AuthRequired)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped", "submissions", contactRepo.Count())
}

// newMux wires routes and middleware. The submissions listing is open unless
// AUTH_REQUIRED=true.
func newMux(
	cfg *config.Config,
	db repository.DB,
	contactService service.ContactService,
	operators auth.OperatorDirectory,
	limiter *handler.RateLimiter,
) http.Handler {
	h := handler.New(db, cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)

	wrapAuth := func(next http.Handler) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireOperator(auth.SessionSecretBytes(cfg.SessionSecret), operators)(next)
		}
		return auth.DevAuth(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("GET /api/interests", contactHandler.Interests)
	mux.Handle("POST /api/contact", limiter.Middleware(http.HandlerFunc(contactHandler.Submit)))
	mux.Handle("GET /api/contact-submissions", wrapAuth(http.HandlerFunc(contactHandler.List)))

	return handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))
}
