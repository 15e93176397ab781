// Package chart renders sensor readings as a time-series line chart.
package chart

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"farmhub-client/internal/farmhub"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("no readings to plot")

// DataSource is the part of farmhub.Client PlotData needs.
type DataSource interface {
	GetData(ctx context.Context, deviceID, sensorID int, start, stop time.Time) ([]farmhub.Reading, error)
}

type Options struct {
	Title  string
	YLabel string
	// Out is the image path; the extension (.png, .svg, .pdf, ...) picks the format.
	Out    string
	Width  vg.Length
	Height vg.Length
}

// PlotData fetches a series through src and renders it to opts.Out.
func PlotData(ctx context.Context, src DataSource, deviceID, sensorID int, start, stop time.Time, opts Options) error {
	readings, err := src.GetData(ctx, deviceID, sensorID, start, stop)
	if err != nil {
		return fmt.Errorf("failed to fetch data: %w", err)
	}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("device %d sensor %d", deviceID, sensorID)
	}
	return Render(readings, opts)
}

func Render(readings []farmhub.Reading, opts Options) error {
	if len(readings) == 0 {
		return ErrNoData
	}
	if opts.Width == 0 {
		opts.Width = 10 * vg.Inch
	}
	if opts.Height == 0 {
		opts.Height = 4 * vg.Inch
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "created_at"
	p.Y.Label.Text = opts.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02\n15:04"}
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(readings))
	for i, r := range readings {
		pts[i].X = float64(r.CreatedAt.Unix())
		pts[i].Y = r.Value
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build line: %w", err)
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	p.Add(line)

	if err := p.Save(opts.Width, opts.Height, opts.Out); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
