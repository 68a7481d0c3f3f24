package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/envcharts/internal/adapters/render"
)

const figureSuffix = "/figure"

// ChartsHandler serves the latest content of board containers.
type ChartsHandler struct {
	board *render.Board
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(board *render.Board) *ChartsHandler {
	return &ChartsHandler{board: board}
}

// HandleChart handles GET /charts/{id} (image) and GET /charts/{id}/figure.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/charts/")
	id, figure := strings.CutSuffix(path, figureSuffix)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	p, ok := h.board.Panel(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: %w", ErrNotFound, render.ErrUnknownContainer))
		return
	}

	body, contentType := p.Image, p.ImageType
	if figure {
		body, contentType = p.Figure, "application/json; charset=utf-8"
	}
	if len(body) == 0 {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: %s", ErrNotFound, id))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Last-Modified", p.UpdatedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(body)
	}
}
