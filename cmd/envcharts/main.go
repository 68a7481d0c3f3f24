// Command envcharts fetches environmental metrics once and writes the bar
// chart to an image file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/okian/envcharts/internal/adapters/metricsapi"
	"github.com/okian/envcharts/internal/adapters/render"
	app "github.com/okian/envcharts/internal/app"
	"github.com/okian/envcharts/internal/domain/variant"
	"github.com/okian/envcharts/pkg/logger"
)

// Default flag values.
const (
	defaultURL     = "http://localhost:5000"
	defaultTimeout = 10 * time.Second
	outputFileMode = 0o644
)

const usage = `envcharts - render environmental metrics as a bar chart

Usage:
  envcharts [options]

Options:
  -url string        Base URL of the metrics endpoint (default "http://localhost:5000")
  -variant string    city (air quality of one city) or all (every city, grouped) (default "city")
  -city string       City for the city variant (default "Chicago")
  -container string  Container id recorded with the render (default "charts")
  -out string        Output file (default "chart.<format>")
  -format string     png or svg, inferred from -out when omitted
  -width int         Image width in pixels (default 800)
  -height int        Image height in pixels (default 480)
  -timeout duration  Request timeout (default 10s)
  -verbose           Enable debug logging

Examples:
  envcharts -city Chicago -out chicago.png
  envcharts -variant all -out cities.svg
`

type options struct {
	url       string
	variant   string
	city      string
	container string
	out       string
	format    string
	width     int
	height    int
	timeout   time.Duration
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("envcharts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = io.WriteString(stderr, usage) }
	fs.StringVar(&o.url, "url", defaultURL, "")
	fs.StringVar(&o.variant, "variant", variant.NameCity, "")
	fs.StringVar(&o.city, "city", app.DefaultCity, "")
	fs.StringVar(&o.container, "container", app.DefaultContainer, "")
	fs.StringVar(&o.out, "out", "", "")
	fs.StringVar(&o.format, "format", "", "")
	fs.IntVar(&o.width, "width", 800, "")
	fs.IntVar(&o.height, "height", 480, "")
	fs.DurationVar(&o.timeout, "timeout", defaultTimeout, "")
	fs.BoolVar(&o.verbose, "verbose", false, "")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	o.format = strings.ToLower(strings.TrimSpace(o.format))
	if o.format == "" {
		o.format = strings.TrimPrefix(strings.ToLower(filepath.Ext(o.out)), ".")
	}
	if o.format == "" {
		o.format = render.FormatPNG
	}
	if o.format != render.FormatPNG && o.format != render.FormatSVG {
		return options{}, fmt.Errorf("%w: %q", render.ErrUnknownFormat, o.format)
	}
	if o.out == "" {
		o.out = "chart." + o.format
	}
	return o, nil
}

// run performs one load and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "envcharts:", err)
		return 2
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := logger.New(stderr, level).Named("envcharts")

	v, err := variant.Parse(o.variant, o.city)
	if err != nil {
		fmt.Fprintln(stderr, "envcharts:", err)
		return 2
	}

	board := render.NewBoard(o.container)
	renderer := render.NewImageRenderer(board,
		render.WithFormat(o.format),
		render.WithSize(o.width, o.height),
	)
	client := metricsapi.New(o.url,
		metricsapi.WithTimeout(o.timeout),
		metricsapi.WithLogger(log),
	)
	loader := app.New(client, renderer,
		app.WithVariant(v),
		app.WithContainer(o.container),
		app.WithLogger(log),
	)

	res := loader.Load(ctx)
	if !res.OK() {
		fmt.Fprintln(stderr, "envcharts:", res.Err)
		return 1
	}

	p, _ := board.Panel(o.container)
	if err := os.WriteFile(o.out, p.Image, outputFileMode); err != nil {
		fmt.Fprintln(stderr, "envcharts: write output:", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %s (%d bytes, %d series, load %s)\n", o.out, len(p.Image), len(res.Series), res.ID)
	return 0
}
