// internal/render/svg.go
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	svgHeight   = 400
	svgMinWidth = 512
	svgBarWidth = 24
	svgBarSpace = 8
)

// ErrEmptyChart is returned when a chart has no non-zero value to draw.
var ErrEmptyChart = errors.New("chart has no data")

// RenderSVG draws spec as an SVG image. Bar specs become a bar chart with the
// series of each label side by side; doughnut specs become a pie chart.
func RenderSVG(spec ChartSpec, w io.Writer) error {
	if spec.Empty() {
		return ErrEmptyChart
	}

	switch spec.Type {
	case ChartTypeBar:
		return renderBars(spec, w)
	case ChartTypeDoughnut:
		return renderPie(spec, w)
	default:
		return fmt.Errorf("render svg: unsupported chart type %q", spec.Type)
	}
}

func renderBars(spec ChartSpec, w io.Writer) error {
	var (
		bars []chart.Value
		peak int
	)
	for i, label := range spec.Data.Labels {
		for d, ds := range spec.Data.Datasets {
			if i >= len(ds.Data) {
				continue
			}
			v := ds.Data[i]
			peak = max(peak, v)
			if d > 0 {
				label = ""
			}
			bars = append(bars, chart.Value{
				Label: label,
				Value: float64(v),
				Style: chart.Style{
					FillColor:   parseColor(ds.color(i)),
					StrokeColor: parseColor(ds.BorderColor),
					StrokeWidth: float64(ds.BorderWidth),
				},
			})
		}
	}

	graph := chart.BarChart{
		Width:      max(svgMinWidth, len(bars)*(svgBarWidth+svgBarSpace)+120),
		Height:     svgHeight,
		BarWidth:   svgBarWidth,
		BarSpacing: svgBarSpace,
		Background: chart.Style{
			Padding: chart.Box{Top: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(max(peak, 1))},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func renderPie(spec ChartSpec, w io.Writer) error {
	ds := spec.Data.Datasets[0]

	var values []chart.Value
	for i, label := range spec.Data.Labels {
		if i >= len(ds.Data) || ds.Data[i] == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: label,
			Value: float64(ds.Data[i]),
			Style: chart.Style{
				FillColor:   parseColor(ds.color(i)),
				StrokeColor: parseColor(ds.BorderColor),
				StrokeWidth: float64(ds.BorderWidth),
			},
		})
	}

	graph := chart.PieChart{
		Width:  svgMinWidth,
		Height: svgMinWidth,
		Values: values,
	}
	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// parseColor understands the two color forms chart specs use: "#rrggbb" and
// "rgba(r, g, b, a)".
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "rgba(") {
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err == nil {
			return drawing.Color{R: r, G: g, B: b, A: uint8(a * 255)}
		}
		return drawing.ColorTransparent
	}
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
