// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/cors"

	"github.com/okian/envcharts/internal/adapters/render"
	service "github.com/okian/envcharts/internal/app"
	"github.com/okian/envcharts/pkg/logger"
)

// Loader runs one chart load. Implemented by service.Loader.
type Loader interface {
	Load(ctx context.Context) service.Result
	Container() string
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler    *HealthHandler
	dashboardHandler *DashboardHandler
	chartsHandler    *ChartsHandler

	corsOrigins []string
	logger      logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(loader Loader, board *render.Board, opts ...Option) *Server {
	s := &Server{
		corsOrigins: []string{"*"},
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.dashboardHandler = NewDashboardHandler(loader, s.logger)
	s.chartsHandler = NewChartsHandler(board)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/charts/", MetricsMiddleware(s.chartsHandler.HandleChart, "charts"))
	mux.HandleFunc("/{$}", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
}

// Handler wraps h with the configured CORS policy.
func (s *Server) Handler(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(h)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
