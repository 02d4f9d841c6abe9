package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"llm-lms/backend/internal/api"
	"llm-lms/backend/internal/auth"
	"llm-lms/backend/internal/config"
	"llm-lms/backend/internal/llm"
	"llm-lms/backend/internal/observability/metrics"
	"llm-lms/backend/internal/service"
)

// App is the assembled server.
type App struct {
	Server  *http.Server
	Clients *Clients
	Gateway *llm.Gateway
}

// NewApp wires every component from cfg. reg receives the application
// metrics; nil means the default registry.
func NewApp(ctx context.Context, cfg *config.Config, reg *prometheus.Registry) (*App, error) {
	logger := slog.Default()

	var (
		m        *metrics.Metrics
		gatherer prometheus.Gatherer
	)
	if reg != nil {
		m, gatherer = metrics.New(reg), reg
	} else {
		m = metrics.New(nil)
	}

	kind, err := llm.ResolveProviderKind(cfg.LLMProvider, cfg.LLMAPIURL)
	if err != nil {
		return nil, fmt.Errorf("resolve llm provider: %w", err)
	}
	gateway, err := llm.NewGateway(llm.GatewayConfig{
		URL:      cfg.LLMAPIURL,
		Provider: kind,
		APIKey:   cfg.OpenRouterAPIKey,
		Referer:  cfg.LLMReferer,
		Title:    cfg.LLMTitle,
		Timeout:  cfg.LLMTimeout,
	}, m, logger)
	if err != nil {
		return nil, fmt.Errorf("create llm gateway: %w", err)
	}
	if kind == llm.ProviderOpenRouter && cfg.OpenRouterAPIKey == "" {
		logger.Warn("OPENROUTER_API_KEY is not set, completion calls will fail")
	}

	clients := NewClients(cfg, logger)
	clients.EnsureInitialized(ctx)

	chatService := service.NewChatService(gateway, llm.Options{
		Model:       cfg.ChatModel,
		MaxTokens:   cfg.ChatMaxTokens,
		Temperature: cfg.ChatTemperature,
	}, clients.DocumentStore(), m, logger)
	quizService := service.NewQuizService(gateway, llm.Options{
		Model:       cfg.QuizModel,
		MaxTokens:   cfg.QuizMaxTokens,
		Temperature: cfg.QuizTemperature,
	}, clients.DocumentStore(), m, logger)
	uploadService := service.NewUploadService(clients.BlobStore(), cfg.SignedURLTTL, clients.DocumentStore(), m, logger)
	authService := service.NewAuthService()

	router := api.NewRouter(api.RouterDeps{
		Chat:        api.NewChatHandler(chatService),
		Quiz:        api.NewQuizHandler(quizService),
		Upload:      api.NewUploadHandler(uploadService, cfg.UploadMaxBytes),
		Auth:        api.NewAuthHandler(authService),
		Resolver:    auth.NewResolver(clients.Verifier(), logger),
		Metrics:     m,
		Gatherer:    gatherer,
		Logger:      logger,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("Application wired", "llm_provider", string(kind), "llm_url", cfg.LLMAPIURL)
	return &App{Server: server, Clients: clients, Gateway: gateway}, nil
}

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, nil)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Clients.Close(); err != nil {
			slog.Error("Failed to close backend clients", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		return 1
	}
	slog.Info("Server stopped")
	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
