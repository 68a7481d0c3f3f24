package render

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/envcharts/internal/domain/model"
)

// Figure is a Plotly-compatible figure: newPlot(container, data, layout).
type Figure struct {
	Data   []model.ChartSeries `json:"data"`
	Layout model.Layout        `json:"layout"`
}

// FigureRenderer stores figure JSON on a Board.
type FigureRenderer struct {
	board *Board
}

// NewFigureRenderer creates a figure renderer writing to board.
func NewFigureRenderer(board *Board) *FigureRenderer {
	return &FigureRenderer{board: board}
}

// Render implements Renderer.
func (r *FigureRenderer) Render(_ context.Context, container string, series []model.ChartSeries, layout model.Layout) (err error) {
	defer func(start time.Time) { observe("figure", start, err) }(time.Now())

	if !r.board.Has(container) {
		return fmt.Errorf("%w: %q", ErrUnknownContainer, container)
	}
	if series == nil {
		series = []model.ChartSeries{}
	}
	b, err := json.Marshal(Figure{Data: series, Layout: layout})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return r.board.SetFigure(container, b)
}
