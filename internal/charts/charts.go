// Package charts renders the completion statistics as an interactive HTML
// chart page.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ktanahashi/cardbinder/internal/collection"
)

// Config holds chart rendering settings.
type Config struct {
	Title    string
	Subtitle string
	Width    string // e.g. "900px"
	Height   string // e.g. "500px"
	Theme    string
	Color    string
}

// DefaultConfig returns default chart settings.
func DefaultConfig() Config {
	return Config{
		Title:  "Collection Completion",
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
		Color:  "#5470C6",
	}
}

// RenderCompletion writes an HTML bar chart of completion percentages to w:
// one bar per product plus an overall bar.
func RenderCompletion(overall collection.Stats, byProduct []collection.ProductStats, config Config, w io.Writer) error {
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithColorsOpts(opts.Colors{config.Color}),
	)

	labels := make([]string, 0, len(byProduct)+1)
	values := make([]opts.BarData, 0, len(byProduct)+1)

	labels = append(labels, "Overall")
	values = append(values, opts.BarData{Value: overall.CompletionPercent})

	for _, ps := range byProduct {
		labels = append(labels, ps.Product)
		values = append(values, opts.BarData{Value: ps.CompletionPercent})
	}

	bar.SetXAxis(labels).
		AddSeries("Completion %", values).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render completion chart: %w", err)
	}
	return nil
}
