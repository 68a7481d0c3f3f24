package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/okian/envcharts/internal/adapters/render"
	service "github.com/okian/envcharts/internal/app"
	"github.com/okian/envcharts/internal/domain/model"
	"github.com/okian/envcharts/pkg/logger"
)

//go:embed static/dashboard.html
var dashboardFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(dashboardFS, "static/dashboard.html"))

// dashboardPage is the data handed to dashboard.html.
type dashboardPage struct {
	Container string
	LoadID    string
	Variant   string
	Figure    render.Figure
	Error     string
}

// DashboardHandler serves the hosting page. Every page request runs one load.
type DashboardHandler struct {
	loader Loader
	logger logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(loader Loader, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{loader: loader, logger: log}
}

// HandleDashboard handles GET / requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	res := h.loader.Load(r.Context())
	page := dashboardPage{
		Container: h.loader.Container(),
		LoadID:    res.ID,
		Variant:   res.Variant,
		Figure:    render.Figure{Data: res.Series, Layout: res.Layout},
	}
	status := http.StatusOK
	if !res.OK() {
		status, page.Error = failure(res.Err)
	}
	if page.Figure.Data == nil {
		page.Figure.Data = []model.ChartSeries{}
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.Error(r.Context(), "dashboard template", logger.String("load_id", res.ID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %w", ErrTemplate, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// failure maps a failed load to a status and a short message for the page.
// The wrapped error stays in the loader log.
func failure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrFetch):
		return http.StatusBadGateway, "the metrics service did not return usable data"
	case errors.Is(err, service.ErrBuild):
		return http.StatusBadGateway, "the metrics response is missing the plotted series"
	case errors.Is(err, service.ErrRender):
		return http.StatusInternalServerError, "the chart could not be drawn"
	default:
		return http.StatusInternalServerError, "unexpected error"
	}
}
