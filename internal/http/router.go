package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	apierrors "github.com/pribylovaa/go-shorts-platform/internal/http/errors"
	"github.com/pribylovaa/go-shorts-platform/internal/http/handlers"
	"github.com/pribylovaa/go-shorts-platform/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты на корне.

	Verifier middleware.TokenVerifier
	Metrics  middleware.RequestObserver

	// AllowedOrigins пустой — CORS не подключается.
	AllowedOrigins []string

	// RateLimit запросов на IP за RateWindow; 0 отключает лимит.
	RateLimit  int
	RateWindow time.Duration

	Handlers handlers.Options
}

// NewRouter собирает http.Handler с chi, middleware и маршрутами API.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования, чтобы request_id попал в логгер
		middleware.Logging(opts.Logger),
		middleware.Metrics(opts.Metrics),
	)

	if len(opts.AllowedOrigins) > 0 {
		root.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.HeaderRequestID},
			ExposedHeaders:   []string{middleware.HeaderRequestID, "Retry-After"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}

		root.Use(httprate.Limit(opts.RateLimit, window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				apierrors.WriteStatus(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests")
			}),
		))
	}

	root.Use(
		middleware.AuthBearer(opts.Verifier),
		middleware.Timeout(opts.Timeout),
	)

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteStatus(w, r, http.StatusNotFound, "not_found", "route not found")
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apierrors.WriteStatus(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	h := handlers.New(svc, opts.Handlers)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)

		return root
	}

	registerRoutes(root, h)

	return root
}

// registerRoutes — единая точка регистрации REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/me", h.Me)

	// videos
	r.Post("/videos/upload-url", h.RequestUploadURL)
	r.Post("/videos", h.CreateVideo)
	r.Get("/videos/{id}", h.GetVideo)
	r.Delete("/videos/{id}", h.DeleteVideo)
	r.Post("/videos/{id}/view", h.RecordView)
	r.Post("/videos/{id}/like", h.ToggleVideoLike)
	r.Put("/videos/{id}/thumbnail", h.UploadThumbnail)

	// comments
	r.Get("/videos/{id}/comments", h.ListVideoComments)
	r.Post("/videos/{id}/comments", h.CreateComment)
	r.Get("/comments/{id}", h.GetComment)
	r.Patch("/comments/{id}", h.EditComment)
	r.Delete("/comments/{id}", h.DeleteComment)
	r.Get("/comments/{id}/thread", h.GetThread)
	r.Post("/comments/{id}/like", h.ToggleCommentLike)
	r.Post("/comments/{id}/report", h.ReportComment)

	// admin
	r.Post("/admin/videos/{id}/reconcile", h.ReconcileVideo)
}
