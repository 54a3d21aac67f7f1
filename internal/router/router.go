package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"codelab-backend/internal/handlers"
	"codelab-backend/internal/metrics"
	"codelab-backend/internal/middleware"
)

func New(
	runCodeHandler *handlers.RunCodeHandler,
	askHandler *handlers.AskHandler,
	generateHandler *handlers.GenerateHandler,
	localModelHandler *handlers.LocalModelHandler,
	m *metrics.Metrics,
	staticDir string,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))
	r.Use(requestMetrics(m))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", m.Handler())

	// ──── Proxy Routes ────
	r.Post("/run-code", runCodeHandler.Execute)
	r.Post("/ask-llm", askHandler.Ask)
	r.Post("/api/generate", generateHandler.Generate)
	r.Post("/ask-local-model", localModelHandler.Ask)

	// ──── Static Front-End (fallback) ────
	r.Get("/*", staticHandler(staticDir))

	return r
}

// requestMetrics counts every completed request by matched route and status.
func requestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			m.RecordRequest(route, ww.Status())
		})
	}
}

// staticHandler serves front-end assets, falling back to the entry document
// for any path that does not match a file on disk.
func staticHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))

	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		fileServer.ServeHTTP(w, r)
	}
}
