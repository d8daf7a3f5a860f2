// Package chart renders PNG artifacts for a single test snapshot and for
// the historical trend.
package chart

import (
	"errors"
	"fmt"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"netpulse/internal/history"
)

// Default artifact locations. Files are overwritten on every render.
const (
	DefaultSnapshotPath = "current_speed_test.png"
	DefaultHistoryPath  = "speed_test_history.png"
)

// ErrNoHistory is returned when there are not enough records to plot a
// trend. A time series needs at least two points.
var ErrNoHistory = errors.New("not enough historical data to chart")

func pointStyle(col chart.Style, stroke, dot float64) chart.Style {
	col.StrokeWidth = stroke
	col.DotWidth = dot
	return col
}

// RenderSnapshot writes a bar chart of one record's metrics to path.
func RenderSnapshot(rec history.Record, path string) error {
	bars := chart.BarChart{
		Title:    "Current Speed Test — " + rec.Timestamp.Format("2006-01-02 15:04"),
		Width:    800,
		Height:   480,
		BarWidth: 90,
		Bars: []chart.Value{
			{Value: rec.DownloadMbps, Label: fmt.Sprintf("Down %.2f Mbps", rec.DownloadMbps)},
			{Value: rec.UploadMbps, Label: fmt.Sprintf("Up %.2f Mbps", rec.UploadMbps)},
			{Value: rec.PingMs, Label: fmt.Sprintf("Ping %.2f ms", rec.PingMs)},
			{Value: rec.StabilityScore, Label: fmt.Sprintf("Stability %.2f%%", rec.StabilityScore)},
		},
	}
	return renderToFile(path, func(f *os.File) error {
		return bars.Render(chart.PNG, f)
	})
}

// RenderHistory writes the download/upload/ping trend over time to path.
// Ping is plotted against the secondary axis so throughput scales stay
// readable.
func RenderHistory(records []history.Record, path string) error {
	if len(records) < 2 {
		return ErrNoHistory
	}

	times := make([]time.Time, len(records))
	downloads := make([]float64, len(records))
	uploads := make([]float64, len(records))
	pings := make([]float64, len(records))
	for i, r := range records {
		times[i] = r.Timestamp
		downloads[i] = r.DownloadMbps
		uploads[i] = r.UploadMbps
		pings[i] = r.PingMs
	}

	ch := chart.Chart{
		Title:  "Speed Test History",
		Width:  1000,
		Height: 560,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: chart.YAxis{
			Name: "Speed (Mbps)",
		},
		YAxisSecondary: chart.YAxis{
			Name: "Ping (ms)",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Download (Mbps)",
				XValues: times,
				YValues: downloads,
				Style:   pointStyle(chart.Style{StrokeColor: chart.ColorBlue, DotColor: chart.ColorBlue}, 2, 3),
			},
			chart.TimeSeries{
				Name:    "Upload (Mbps)",
				XValues: times,
				YValues: uploads,
				Style:   pointStyle(chart.Style{StrokeColor: chart.ColorGreen, DotColor: chart.ColorGreen}, 2, 3),
			},
			chart.TimeSeries{
				Name:    "Ping (ms)",
				XValues: times,
				YValues: pings,
				YAxis:   chart.YAxisSecondary,
				Style:   pointStyle(chart.Style{StrokeColor: chart.ColorRed, DotColor: chart.ColorRed}, 2, 3),
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderToFile(path, func(f *os.File) error {
		return ch.Render(chart.PNG, f)
	})
}

func renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}
