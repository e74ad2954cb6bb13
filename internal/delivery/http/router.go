package http

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "schoolactivities/docs"
	"schoolactivities/internal/delivery/http/controllers"
	"schoolactivities/internal/delivery/http/middleware"
)

// IndexPath is where GET / redirects.
const IndexPath = "/static/index.html"

// RouterConfig carries the dependencies of NewRouter.
type RouterConfig struct {
	Logger         *slog.Logger
	Activities     *controllers.ActivityController
	Static         fs.FS
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the request ID, logging, CORS, metrics and JSON error middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /activities", cfg.Activities.ListActivities)
	mux.HandleFunc("POST /activities/{name}/signup", cfg.Activities.SignUp)
	mux.HandleFunc("DELETE /activities/{name}/unregister", cfg.Activities.Unregister)

	// Site
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
	})
	if cfg.Static != nil {
		// FileServer redirects */index.html to the directory, so the index is served directly.
		mux.HandleFunc("GET "+IndexPath, staticIndex(cfg.Static))
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(cfg.Static)))
	}

	// Operations
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var h http.Handler = middleware.Metrics(middleware.JSONErrors(mux))
	h = middleware.CORS(cfg.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(cfg.Logger, h)
	return middleware.RequestID(h)
}

func staticIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(static, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	}
}
