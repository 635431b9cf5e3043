// internal/render/render_test.go
package render

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_ConcurrentWrites(t *testing.T) {
	page := NewPage("octocat")

	var wg sync.WaitGroup
	for _, region := range Regions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page.Markup(region, template.HTML("<p>"+string(region)+"</p>"))
		}()
	}
	wg.Wait()

	s := page.Snapshot()
	assert.Len(t, s.Markup, len(Regions))
	assert.Equal(t, template.HTML("<p>stats-box</p>"), s.Markup[RegionStats])
	assert.Nil(t, s.Calendar)
}

func TestPage_Write(t *testing.T) {
	page := NewPage("octocat's dashboard")
	page.Markup(RegionStats, template.HTML(`<div class="stat-card">42</div>`))
	page.Chart(RegionRepoChart, RepoBarChart([]string{"hello"}, []int{3}, []int{1}))
	page.Calendar(CalendarWidget{
		Region:  RegionCalendar,
		Account: "octocat",
		Options: CalendarOptions{Responsive: true, Tooltips: true, GlobalStats: true},
	})

	var buf bytes.Buffer
	require.NoError(t, page.Write(&buf))
	html := buf.String()

	assert.Contains(t, html, `<div class="stat-card">42</div>`, "fragments are embedded verbatim")
	assert.Contains(t, html, `id="latest-commits"`)
	assert.Contains(t, html, `new Chart(document.getElementById("repoChart")`)
	assert.Contains(t, html, `"type":"bar"`)
	assert.Contains(t, html, `GitHubCalendar("#github-calendar", "octocat", {"responsive":true,"tooltips":true,"global_stats":true})`)
	assert.NotContains(t, html, `getElementById("langChart")`, "charts that were never produced are skipped")
}

func TestFragment_EscapesContent(t *testing.T) {
	out, err := Fragment("commits", []CommitItem{{Message: "<script>alert(1)</script>", RepoName: "o/r", Ago: "just now"}})

	require.NoError(t, err)
	assert.Contains(t, string(out), "&lt;script&gt;")
	assert.Contains(t, string(out), `href="https://github.com/o/r"`)
	assert.NotContains(t, string(out), "<script>")
}

func TestFragment_EmptyStates(t *testing.T) {
	commits, err := Fragment("commits", []CommitItem(nil))
	require.NoError(t, err)
	assert.Contains(t, string(commits), "No recent commits")

	prs, err := Fragment("activity", ActivityList{Kind: "pr", Empty: "No recent pull requests"})
	require.NoError(t, err)
	assert.Contains(t, string(prs), "No recent pull requests")
}

func TestFragment_RepoCard(t *testing.T) {
	out, err := Fragment("repos", []RepoCard{
		{Name: "hello", URL: "https://github.com/o/hello", Description: "No description", Language: "Go", LanguageColor: "#00ADD8", Stars: 4, Forks: 1},
		{Name: "plain", Description: "text"},
	})

	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "background: #00ADD8")
	assert.Contains(t, html, "⭐ 4")
	assert.Equal(t, 1, strings.Count(html, "language-dot"), "cards without a language have no dot")
}

func TestRepoBarChart_JSON(t *testing.T) {
	spec := RepoBarChart([]string{"a", "b"}, []int{5, 2}, []int{1, 0})

	raw, err := json.Marshal(spec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "bar", decoded["type"])
	data := decoded["data"].(map[string]any)
	assert.Equal(t, []any{"a", "b"}, data["labels"])
	datasets := data["datasets"].([]any)
	require.Len(t, datasets, 2)
	assert.Equal(t, "Stars", datasets[0].(map[string]any)["label"])
	assert.Equal(t, "Forks", datasets[1].(map[string]any)["label"])
}

func TestRenderSVG(t *testing.T) {
	t.Run("bar chart", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderSVG(RepoBarChart([]string{"a", "b"}, []int{5, 2}, []int{1, 3}), &buf)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "<svg")
	})

	t.Run("doughnut chart", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderSVG(LanguageDoughnutChart([]string{"Go", "Rust"}, []int{3, 1}, []string{"#00ADD8", "#dea584"}), &buf)

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "<svg")
	})

	t.Run("empty chart", func(t *testing.T) {
		var buf bytes.Buffer
		err := RenderSVG(RepoBarChart(nil, nil, nil), &buf)

		assert.ErrorIs(t, err, ErrEmptyChart)
	})
}

func TestParseColor(t *testing.T) {
	c := parseColor("rgba(88, 166, 255, 0.8)")
	assert.Equal(t, uint8(88), c.R)
	assert.Equal(t, uint8(166), c.G)
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(204), c.A)

	h := parseColor("#00ADD8")
	assert.Equal(t, uint8(0x00), h.R)
	assert.Equal(t, uint8(0xAD), h.G)
	assert.Equal(t, uint8(0xD8), h.B)
}
