package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, h *Handlers) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           NewRouter(exposeMetrics, h),
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// NewRouter собирает маршруты; отдельно от Server, чтобы гонять в httptest.
func NewRouter(exposeMetrics bool, h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	if h != nil {
		r.Route("/api", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(30 * time.Second))
			r.Post("/quotes", h.Quote)
			r.Post("/orders/submit", h.SubmitOrder)
			r.Get("/materials/{id}/grid", h.ExportGrid)
			r.Post("/materials/{id}/grid", h.ImportGrid)
		})
	}
	return r
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func requestLog(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With("req_id", chimiddleware.GetReqID(r.Context()), "path", r.URL.Path)
}
