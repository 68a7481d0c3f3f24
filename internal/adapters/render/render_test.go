package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/okian/envcharts/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func bars(label string, cats []string, vals []float64) model.ChartSeries {
	return model.ChartSeries{Categories: cats, Values: vals, Label: label, Kind: model.KindBar}
}

func TestBoard(t *testing.T) {
	Convey("Given a board with one container", t, func() {
		b := NewBoard("charts")

		Convey("Then only declared containers should exist", func() {
			So(b.Has("charts"), ShouldBeTrue)
			So(b.Has("other"), ShouldBeFalse)
			p, ok := b.Panel("charts")
			So(ok, ShouldBeTrue)
			So(p.Renders, ShouldEqual, 0)
			So(p.Figure, ShouldBeEmpty)
		})

		Convey("When writing to an undeclared container", func() {
			err := b.SetFigure("other", []byte("{}"))
			So(errors.Is(err, ErrUnknownContainer), ShouldBeTrue)
		})

		Convey("When writing a figure and an image", func() {
			So(b.SetFigure("charts", []byte(`{"data":[]}`)), ShouldBeNil)
			So(b.SetImage("charts", []byte{1, 2, 3}, "image/png"), ShouldBeNil)

			p, _ := b.Panel("charts")

			Convey("Then the panel should hold both", func() {
				So(string(p.Figure), ShouldEqual, `{"data":[]}`)
				So(p.Image, ShouldResemble, []byte{1, 2, 3})
				So(p.ImageType, ShouldEqual, "image/png")
				So(p.Renders, ShouldEqual, 2)
				So(p.UpdatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And the returned panel should be a copy", func() {
				p.Image[0] = 9
				again, _ := b.Panel("charts")
				So(again.Image[0], ShouldEqual, 1)
			})
		})

		Convey("When declaring the same container twice", func() {
			So(b.SetFigure("charts", []byte("x")), ShouldBeNil)
			b.Declare("charts")
			p, _ := b.Panel("charts")
			So(string(p.Figure), ShouldEqual, "x")
		})

		Convey("When many goroutines write", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = b.SetFigure("charts", []byte("{}"))
					_, _ = b.Panel("charts")
				}()
			}
			wg.Wait()
			p, _ := b.Panel("charts")
			So(p.Renders, ShouldEqual, 20)
		})
	})
}

func TestFigureRenderer(t *testing.T) {
	Convey("Given a figure renderer", t, func() {
		ctx := context.Background()
		b := NewBoard("charts")
		r := NewFigureRenderer(b)

		Convey("When rendering grouped series", func() {
			series := []model.ChartSeries{
				bars("Air Quality", []string{"Chicago", "NYC"}, []float64{5, 7}),
				bars("Water Usage", []string{"Chicago", "NYC"}, []float64{100, 200}),
			}
			err := r.Render(ctx, "charts", series, model.Layout{BarMode: model.BarModeGroup})
			So(err, ShouldBeNil)

			p, _ := b.Panel("charts")
			var fig Figure
			So(json.Unmarshal(p.Figure, &fig), ShouldBeNil)

			Convey("Then the figure should carry the traces and layout", func() {
				So(fig.Data, ShouldResemble, series)
				So(fig.Layout.BarMode, ShouldEqual, model.BarModeGroup)
				So(string(p.Figure), ShouldContainSubstring, `"barmode":"group"`)
				So(string(p.Figure), ShouldContainSubstring, `"type":"bar"`)
			})
		})

		Convey("When rendering no series", func() {
			So(r.Render(ctx, "charts", nil, model.Layout{Title: "Air Quality in Chicago"}), ShouldBeNil)
			p, _ := b.Panel("charts")
			So(string(p.Figure), ShouldEqual, `{"data":[],"layout":{"title":"Air Quality in Chicago"}}`)
		})

		Convey("When rendering into a missing container", func() {
			err := r.Render(ctx, "missing", nil, model.Layout{})
			So(errors.Is(err, ErrUnknownContainer), ShouldBeTrue)
		})
	})
}

func TestImageRenderer(t *testing.T) {
	Convey("Given an image renderer", t, func() {
		ctx := context.Background()
		b := NewBoard("charts")

		Convey("When rendering a titled single series as png", func() {
			r := NewImageRenderer(b, WithSize(640, 360))
			series := []model.ChartSeries{bars("Air Quality", []string{"PM2.5", "CO2"}, []float64{12, 400})}

			err := r.Render(ctx, "charts", series, model.Layout{Title: "Air Quality in Chicago"})

			Convey("Then a png should be stored", func() {
				So(err, ShouldBeNil)
				p, _ := b.Panel("charts")
				So(p.ImageType, ShouldEqual, "image/png")
				So(bytes.HasPrefix(p.Image, []byte("\x89PNG")), ShouldBeTrue)
			})
		})

		Convey("When rendering grouped series as svg", func() {
			r := NewImageRenderer(b, WithFormat(FormatSVG), WithBarWidth(20))
			series := []model.ChartSeries{
				bars("Air Quality", []string{"Chicago", "NYC"}, []float64{5, 7}),
				bars("Water Usage", []string{"Chicago", "NYC"}, []float64{100, 200}),
			}

			err := r.Render(ctx, "charts", series, model.Layout{BarMode: model.BarModeGroup})

			Convey("Then an svg should be stored", func() {
				So(err, ShouldBeNil)
				p, _ := b.Panel("charts")
				So(p.ImageType, ShouldEqual, "image/svg+xml")
				So(string(p.Image), ShouldContainSubstring, "<svg")
			})
		})

		Convey("When rendering an empty series", func() {
			r := NewImageRenderer(b)
			series := []model.ChartSeries{bars("Air Quality", []string{}, []float64{})}

			err := r.Render(ctx, "charts", series, model.Layout{Title: "Air Quality in Chicago"})

			Convey("Then an empty chart should still be stored", func() {
				So(err, ShouldBeNil)
				p, _ := b.Panel("charts")
				So(p.Renders, ShouldEqual, 1)
				So(len(p.Image), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the format is unknown", func() {
			r := NewImageRenderer(b, WithFormat("gif"))
			err := r.Render(ctx, "charts", nil, model.Layout{})
			So(errors.Is(err, ErrUnknownFormat), ShouldBeTrue)
		})

		Convey("When the container is missing", func() {
			r := NewImageRenderer(b)
			err := r.Render(ctx, "nope", nil, model.Layout{})
			So(errors.Is(err, ErrUnknownContainer), ShouldBeTrue)
		})
	})
}

func TestBarLayout(t *testing.T) {
	Convey("Given two series with partly different categories", t, func() {
		series := []model.ChartSeries{
			bars("Air Quality", []string{"Chicago", "NYC"}, []float64{5, 7}),
			bars("Water Usage", []string{"NYC", "Austin"}, []float64{200, 90}),
		}

		Convey("When laying them out grouped", func() {
			out := groupedBars(series)

			Convey("Then each category should hold one bar per series", func() {
				So(out, ShouldHaveLength, 6)
				So(out[0].Label, ShouldEqual, "Chicago")
				So(out[0].Value, ShouldEqual, 5)
				So(out[1].Label, ShouldEqual, "")
				So(out[1].Value, ShouldEqual, 0)
				So(out[2].Label, ShouldEqual, "NYC")
				So(out[3].Value, ShouldEqual, 200)
				So(out[4].Label, ShouldEqual, "Austin")
				So(out[5].Value, ShouldEqual, 90)
				So(out[0].Style.FillColor, ShouldResemble, palette[0])
				So(out[1].Style.FillColor, ShouldResemble, palette[1])
			})
		})

		Convey("When laying them out sequentially", func() {
			out := sequentialBars(series)

			Convey("Then bars should follow series order", func() {
				So(out, ShouldHaveLength, 4)
				So(out[0].Label, ShouldEqual, "Chicago")
				So(out[2].Label, ShouldEqual, "NYC")
				So(out[2].Value, ShouldEqual, 200)
			})
		})
	})
}

func TestTee(t *testing.T) {
	Convey("Given a tee of two renderers", t, func() {
		ctx := context.Background()
		var calls []string
		ok := RendererFunc(func(context.Context, string, []model.ChartSeries, model.Layout) error {
			calls = append(calls, "ok")
			return nil
		})
		boom := errors.New("boom")
		bad := RendererFunc(func(context.Context, string, []model.ChartSeries, model.Layout) error {
			calls = append(calls, "bad")
			return boom
		})

		Convey("When one fails", func() {
			err := Tee{bad, ok}.Render(ctx, "charts", nil, model.Layout{})

			Convey("Then every renderer should still run and the error surface", func() {
				So(calls, ShouldResemble, []string{"bad", "ok"})
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When all succeed", func() {
			So(Tee{ok, ok}.Render(ctx, "charts", nil, model.Layout{}), ShouldBeNil)
		})
	})
}
