package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okian/envcharts/internal/domain/model"
)

// Image formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

const (
	defaultWidth    = 800
	defaultHeight   = 480
	defaultBarWidth = 40
)

// palette matches the default Plotly trace colours so both renderers agree.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
}

// ImageRenderer draws bar charts with go-chart and stores them on a Board.
type ImageRenderer struct {
	board    *Board
	width    int
	height   int
	barWidth int
	format   string
}

// NewImageRenderer creates an image renderer writing to board.
func NewImageRenderer(board *Board, opts ...Option) *ImageRenderer {
	r := &ImageRenderer{
		board:    board,
		width:    defaultWidth,
		height:   defaultHeight,
		barWidth: defaultBarWidth,
		format:   FormatPNG,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentType returns the MIME type of the produced images.
func (r *ImageRenderer) ContentType() string {
	if strings.EqualFold(r.format, FormatSVG) {
		return "image/svg+xml"
	}
	return "image/png"
}

// Render implements Renderer.
func (r *ImageRenderer) Render(_ context.Context, container string, series []model.ChartSeries, layout model.Layout) (err error) {
	defer func(start time.Time) { observe("image", start, err) }(time.Now())

	if !r.board.Has(container) {
		return fmt.Errorf("%w: %q", ErrUnknownContainer, container)
	}

	var provider chart.RendererProvider
	switch strings.ToLower(r.format) {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}

	bc := r.barChart(series, layout)
	var buf bytes.Buffer
	if err := bc.Render(provider, &buf); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return r.board.SetImage(container, buf.Bytes(), r.ContentType())
}

func (r *ImageRenderer) barChart(series []model.ChartSeries, layout model.Layout) chart.BarChart {
	var bars []chart.Value
	if layout.BarMode == model.BarModeGroup && len(series) > 1 {
		bars = groupedBars(series)
	} else {
		bars = sequentialBars(series)
	}

	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if hi <= lo {
		hi = lo + 1
	}
	// go-chart refuses an empty bar list; draw an empty axis instead.
	if len(bars) == 0 {
		bars = []chart.Value{{Label: "", Value: 0}}
	}

	return chart.BarChart{
		Title:      layout.Title,
		Width:      r.width,
		Height:     r.height,
		BarWidth:   r.barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
}

func barStyle(i int) chart.Style {
	c := palette[i%len(palette)]
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}

// sequentialBars lays every series out one after another.
func sequentialBars(series []model.ChartSeries) []chart.Value {
	var out []chart.Value
	for i, s := range series {
		for j, label := range s.Categories {
			out = append(out, chart.Value{Label: label, Value: s.Values[j], Style: barStyle(i)})
		}
	}
	return out
}

// groupedBars places the bars of each category next to each other, one
// colour per series. Categories follow first appearance across series; a
// series without a category gets a zero bar so groups stay aligned.
func groupedBars(series []model.ChartSeries) []chart.Value {
	var order []string
	seen := make(map[string]struct{})
	lookup := make([]map[string]float64, len(series))
	for i, s := range series {
		lookup[i] = make(map[string]float64, len(s.Categories))
		for j, label := range s.Categories {
			lookup[i][label] = s.Values[j]
			if _, ok := seen[label]; !ok {
				seen[label] = struct{}{}
				order = append(order, label)
			}
		}
	}

	out := make([]chart.Value, 0, len(order)*len(series))
	for _, label := range order {
		for i := range series {
			bar := chart.Value{Value: lookup[i][label], Style: barStyle(i)}
			if i == 0 {
				bar.Label = label
			}
			out = append(out, bar)
		}
	}
	return out
}
