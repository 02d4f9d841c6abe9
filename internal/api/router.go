package api

import (
	"log/slog"
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "llm-lms/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"llm-lms/backend/internal/auth"
	"llm-lms/backend/internal/observability/metrics"
)

// RouterDeps holds everything NewRouter wires into the HTTP surface.
type RouterDeps struct {
	Chat   *ChatHandler
	Quiz   *QuizHandler
	Upload *UploadHandler
	Auth   *AuthHandler

	Resolver *auth.Resolver
	Metrics  *metrics.Metrics
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger

	CORSOrigins []string
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.CORSOrigins))
	r.Use(Instrument(deps.Metrics))

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/", HandleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", deps.Auth.HandleLogin)

		// Everything below resolves the caller identity first.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(deps.Resolver))

			r.Route("/chat", func(r chi.Router) {
				r.Use(middleware.Timeout(120 * time.Second))
				r.Post("/", deps.Chat.HandleChat)
			})
			r.Route("/quiz", func(r chi.Router) {
				r.Use(middleware.Timeout(120 * time.Second))
				r.Post("/", deps.Quiz.HandleGenerateQuiz)
			})
			r.Route("/upload", func(r chi.Router) {
				r.Post("/", deps.Upload.HandleUpload)
			})
		})
	})

	return r
}

// HandleIndex godoc
// @Summary      Service banner
// @Tags         Health
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Router       / [get]
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "LLM-LMS Go backend running"})
}
