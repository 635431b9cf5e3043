// internal/render/chart.go
package render

const (
	ChartTypeBar      = "bar"
	ChartTypeDoughnut = "doughnut"

	tickColor   = "#8b949e"
	gridColor   = "#21262d"
	legendColor = "#c9d1d9"
	sliceBorder = "#161b22"

	starsFill   = "rgba(88, 166, 255, 0.8)"
	starsBorder = "rgba(88, 166, 255, 1)"
	forksFill   = "rgba(56, 211, 159, 0.8)"
	forksBorder = "rgba(56, 211, 159, 1)"
)

// ChartSpec is a chart configuration in the shape the browser chart library
// consumes. It marshals to JSON as-is.
type ChartSpec struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options map[string]any `json:"options"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one series. BackgroundColor holds a single color for bar series
// and one color per slice for doughnuts.
type Dataset struct {
	Label           string `json:"label,omitempty"`
	Data            []int  `json:"data"`
	BackgroundColor any    `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	BorderWidth     int    `json:"borderWidth"`
}

// Empty reports whether the chart has nothing to draw.
func (c ChartSpec) Empty() bool {
	for _, ds := range c.Data.Datasets {
		for _, v := range ds.Data {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// RepoBarChart builds the grouped stars/forks bar chart.
func RepoBarChart(names []string, stars, forks []int) ChartSpec {
	return ChartSpec{
		Type: ChartTypeBar,
		Data: ChartData{
			Labels: names,
			Datasets: []Dataset{
				{Label: "Stars", Data: stars, BackgroundColor: starsFill, BorderColor: starsBorder, BorderWidth: 1},
				{Label: "Forks", Data: forks, BackgroundColor: forksFill, BorderColor: forksBorder, BorderWidth: 1},
			},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": true,
			"plugins": map[string]any{
				"legend": map[string]any{
					"labels": map[string]any{"color": legendColor},
				},
			},
			"scales": map[string]any{
				"y": map[string]any{
					"beginAtZero": true,
					"ticks":       map[string]any{"color": tickColor},
					"grid":        map[string]any{"color": gridColor},
				},
				"x": map[string]any{
					"ticks": map[string]any{"color": tickColor, "maxRotation": 45, "minRotation": 45},
					"grid":  map[string]any{"color": gridColor},
				},
			},
		},
	}
}

// LanguageDoughnutChart builds the language share chart, one color per slice.
func LanguageDoughnutChart(languages []string, counts []int, colors []string) ChartSpec {
	return ChartSpec{
		Type: ChartTypeDoughnut,
		Data: ChartData{
			Labels: languages,
			Datasets: []Dataset{
				{Data: counts, BackgroundColor: colors, BorderColor: sliceBorder, BorderWidth: 2},
			},
		},
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": true,
			"plugins": map[string]any{
				"legend": map[string]any{
					"position": "right",
					"labels": map[string]any{
						"color":   legendColor,
						"padding": 15,
						"font":    map[string]any{"size": 12},
					},
				},
			},
		},
	}
}

// color returns the background color of the i-th value of ds.
func (ds Dataset) color(i int) string {
	switch c := ds.BackgroundColor.(type) {
	case string:
		return c
	case []string:
		if i < len(c) {
			return c[i]
		}
	}
	return tickColor
}
