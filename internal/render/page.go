// internal/render/page.go
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"sync"
)

// Region names a display region of the dashboard page.
type Region string

const (
	RegionStats     Region = "stats-box"
	RegionCommits   Region = "latest-commits"
	RegionPRs       Region = "latest-prs"
	RegionIssues    Region = "latest-issues"
	RegionTopRepos  Region = "pinned-repos"
	RegionTimeline  Region = "activity-timeline"
	RegionFollowers Region = "followers-list"
	RegionRepoChart Region = "repoChart"
	RegionLangChart Region = "langChart"
	RegionHeatmap   Region = "hourly-heatmap"
	RegionCalendar  Region = "github-calendar"
)

// Regions lists every region loaders write to, in page order.
var Regions = []Region{
	RegionStats,
	RegionCommits,
	RegionPRs,
	RegionIssues,
	RegionTopRepos,
	RegionTimeline,
	RegionFollowers,
	RegionRepoChart,
	RegionLangChart,
	RegionHeatmap,
}

// CalendarWidget configures the third-party contribution calendar.
type CalendarWidget struct {
	Region  Region          `json:"region"`
	Account string          `json:"account"`
	Options CalendarOptions `json:"options"`
}

type CalendarOptions struct {
	Responsive  bool `json:"responsive"`
	Tooltips    bool `json:"tooltips"`
	GlobalStats bool `json:"global_stats"`
}

// Page collects what loaders produce for one page load. It is safe for
// concurrent use; regions are write-only from the loaders' point of view.
type Page struct {
	Title string

	mu       sync.Mutex
	markup   map[Region]template.HTML
	charts   map[Region]ChartSpec
	calendar *CalendarWidget
}

func NewPage(title string) *Page {
	return &Page{
		Title:  title,
		markup: make(map[Region]template.HTML),
		charts: make(map[Region]ChartSpec),
	}
}

// Markup replaces the content of region with fragment.
func (p *Page) Markup(region Region, fragment template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.markup[region] = fragment
}

// Chart replaces the chart shown in region.
func (p *Page) Chart(region Region, spec ChartSpec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.charts[region] = spec
}

// Calendar sets up the contribution calendar widget.
func (p *Page) Calendar(widget CalendarWidget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calendar = &widget
}

// Snapshot is a point-in-time copy of a Page.
type Snapshot struct {
	Title    string                   `json:"title"`
	Markup   map[Region]template.HTML `json:"markup"`
	Charts   map[Region]ChartSpec     `json:"charts"`
	Calendar *CalendarWidget          `json:"calendar,omitempty"`
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Snapshot{
		Title:  p.Title,
		Markup: make(map[Region]template.HTML, len(p.markup)),
		Charts: make(map[Region]ChartSpec, len(p.charts)),
	}
	for k, v := range p.markup {
		s.Markup[k] = v
	}
	for k, v := range p.charts {
		s.Charts[k] = v
	}
	if p.calendar != nil {
		c := *p.calendar
		s.Calendar = &c
	}
	return s
}

// pageView keys regions by plain strings so the page template can index them.
type pageView struct {
	Title    string
	Markup   map[string]template.HTML
	Charts   map[string]ChartSpec
	Calendar *CalendarWidget
}

// Write renders the full HTML page to w.
func (p *Page) Write(w io.Writer) error {
	s := p.Snapshot()
	view := pageView{
		Title:    s.Title,
		Markup:   make(map[string]template.HTML, len(s.Markup)),
		Charts:   make(map[string]ChartSpec, len(s.Charts)),
		Calendar: s.Calendar,
	}
	for k, v := range s.Markup {
		view.Markup[string(k)] = v
	}
	for k, v := range s.Charts {
		view.Charts[string(k)] = v
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", view); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
