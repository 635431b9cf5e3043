// internal/dashboard/dashboard.go
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github-dashboard/internal/model"
	"github-dashboard/internal/render"
)

// Fetcher is the subset of the GitHub client the loaders need.
type Fetcher interface {
	GetAccount(ctx context.Context, login string) (*model.Account, error)
	ListRepositories(ctx context.Context, login string, perPage int, sort string) ([]model.Repository, error)
	ListEvents(ctx context.Context, login string, perPage int) ([]model.Event, error)
	ListFollowers(ctx context.Context, login string, perPage int) ([]model.Follower, error)
}

// Sink receives what loaders produce. *render.Page implements it.
type Sink interface {
	Markup(region render.Region, fragment template.HTML)
	Chart(region render.Region, spec render.ChartSpec)
	Calendar(widget render.CalendarWidget)
}

// Settled is the outcome of one loader. Err is nil when the loader rendered
// from live data; otherwise its region shows a degraded state.
type Settled struct {
	Loader string
	Err    error
}

// ErrNoChart is returned by BuildChart for a region that does not hold a chart.
var ErrNoChart = errors.New("region has no chart")

type loader struct {
	name string
	run  func(ctx context.Context, s *Session, sink Sink) error
}

// Dashboard loads and renders the dashboard of a single account.
type Dashboard struct {
	fetcher  Fetcher
	account  string
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewDashboard creates a Dashboard for account. Heatmap days and hours are
// computed in loc.
func NewDashboard(fetcher Fetcher, account string, loc *time.Location, logger *slog.Logger) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	return &Dashboard{
		fetcher:  fetcher,
		account:  account,
		location: loc,
		logger:   logger.With("account", account),
		now:      time.Now,
	}
}

func (d *Dashboard) Account() string {
	return d.account
}

func (d *Dashboard) loaders() []loader {
	return []loader{
		{"profile_stats", d.loadProfileStats},
		{"latest_activity", d.loadLatestActivity},
		{"top_repositories", d.loadTopRepositories},
		{"activity_timeline", d.loadActivityTimeline},
		{"followers", d.loadFollowers},
		{"repo_stats_chart", d.loadRepoStatsChart},
		{"language_chart", d.loadLanguageChart},
		{"hourly_heatmap", d.loadHourlyHeatmap},
	}
}

// Run performs one page load: it starts every loader at once with a fresh
// Session, waits for all of them to settle, then initializes the calendar
// widget. A failing loader never stops the others.
func (d *Dashboard) Run(ctx context.Context, sink Sink) []Settled {
	start := time.Now()
	d.logger.Info("Loading dashboard")

	session := NewSession()
	loaders := d.loaders()
	results := make([]Settled, len(loaders))

	var g errgroup.Group
	for i, l := range loaders {
		g.Go(func() error {
			results[i] = Settled{Loader: l.name, Err: d.runLoader(ctx, l, session, sink)}
			return nil
		})
	}
	_ = g.Wait()

	sink.Calendar(render.CalendarWidget{
		Region:  render.RegionCalendar,
		Account: d.account,
		Options: render.CalendarOptions{Responsive: true, Tooltips: true, GlobalStats: true},
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	d.logger.Info("Dashboard loaded", "elapsed", time.Since(start).String(), "loaders", len(results), "degraded", failed)
	return results
}

// Build runs a page load into a new Page.
func (d *Dashboard) Build(ctx context.Context) (*render.Page, []Settled) {
	page := render.NewPage(d.account + " · GitHub Dashboard")
	results := d.Run(ctx, page)
	return page, results
}

// BuildChart runs only the loader that draws region, with a fresh Session, and
// returns its chart.
func (d *Dashboard) BuildChart(ctx context.Context, region render.Region) (render.ChartSpec, error) {
	var l loader
	switch region {
	case render.RegionRepoChart:
		l = loader{"repo_stats_chart", d.loadRepoStatsChart}
	case render.RegionLangChart:
		l = loader{"language_chart", d.loadLanguageChart}
	default:
		return render.ChartSpec{}, fmt.Errorf("%w: %s", ErrNoChart, region)
	}

	page := render.NewPage(d.account)
	if err := d.runLoader(ctx, l, NewSession(), page); err != nil {
		return render.ChartSpec{}, err
	}
	spec, ok := page.Snapshot().Charts[region]
	if !ok {
		return render.ChartSpec{}, fmt.Errorf("%w: %s", ErrNoChart, region)
	}
	return spec, nil
}

func (d *Dashboard) runLoader(ctx context.Context, l loader, s *Session, sink Sink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader %s panicked: %v", l.name, r)
			d.logger.Error("Loader panicked", "loader", l.name, "panic", r)
		}
	}()

	if err := l.run(ctx, s, sink); err != nil {
		d.logger.Warn("Loader degraded", "loader", l.name, "error", err)
		return err
	}
	d.logger.Debug("Loader finished", "loader", l.name)
	return nil
}
