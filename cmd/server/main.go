// Portfolio server: static site, portfolio data API, and the persona chat
// assistant backed by Gemini.
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

	"github.com/alexswami/portfolio-server/internal/api"
	"github.com/alexswami/portfolio-server/internal/catalog"
	"github.com/alexswami/portfolio-server/internal/chat"
	"github.com/alexswami/portfolio-server/internal/config"
	"github.com/alexswami/portfolio-server/internal/gemini"
	"github.com/alexswami/portfolio-server/internal/identity"
	"github.com/alexswami/portfolio-server/internal/middleware"
	"github.com/alexswami/portfolio-server/internal/resume"
	"github.com/alexswami/portfolio-server/internal/store"
	"github.com/alexswami/portfolio-server/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(), "ai_enabled", cfg.AIEnabled())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	catalogHandler := catalog.NewHandler(catalog.NewService(cfg.CatalogLatency))
	healthHandler := api.NewHealthHandler(repo, cfg.AIEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize AI handlers (optional: without an API key the site still
	// serves, with chat and resume review disabled).
	var chatHandler *chat.Handler
	var voiceHandler *chat.VoiceHandler
	var resumeHandler *resume.Handler
	if cfg.AIEnabled() {
		model, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:       cfg.GeminiAPIKey,
			ChatModel:    cfg.ChatModel,
			SpeechModel:  cfg.SpeechModel,
			ContactEmail: cfg.ContactEmail,
		})
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}

		sessions := chat.NewSessionStore(repo)
		notifier := chat.SimulatedNotifier{Delay: cfg.NotifyDelay}
		manager := chat.NewManager(model, sessions, notifier, cfg.ContactEmail, cfg.ActionResetDelay)
		manager.StartJanitor(ctx, time.Hour, 10*time.Minute)

		rateLimiter := chat.NewRateLimiter(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.WindowDuration)
		chatHandler = chat.NewHandler(manager, model, gemini.SpeechSampleRate, rateLimiter)
		voiceHandler = chat.NewVoiceHandler(manager, cfg.IsDevelopment())
		resumeHandler = resume.NewHandler(model)
		slog.Info("AI features enabled", "chat_model", cfg.ChatModel, "speech_model", cfg.SpeechModel)
	} else {
		slog.Info("AI features disabled (GEMINI_API_KEY not set)")
	}

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(identity.Middleware(cfg.IsDevelopment()))

	// Public routes.
	healthHandler.RegisterHealth(r)
	catalogHandler.RegisterRoutes(r)

	// AI routes (only when enabled).
	if chatHandler != nil {
		chatHandler.RegisterRoutes(r)
		resumeHandler.RegisterRoutes(r)
		r.Get("/ws/chat", voiceHandler.ServeHTTP)
	}

	// Serve embedded frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // model calls and voice sockets outlive fixed write deadlines
		IdleTimeout:  120 * time.Second,
	}

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
