// internal/dashboard/loaders.go
package dashboard

import (
	"context"
	"fmt"

	"github-dashboard/internal/model"
	"github-dashboard/internal/render"
	"github-dashboard/internal/stats"
)

const (
	reposPerPage     = 100
	eventsPerPage    = 100
	timelinePerPage  = 30
	followersPerPage = 24

	activityError = "Failed to load activity"
	noDescription = "No description"
)

// loadProfileStats renders the six profile counters. Nothing is rendered when
// the account cannot be fetched; a failed repository fetch only zeroes the totals.
func (d *Dashboard) loadProfileStats(ctx context.Context, s *Session, sink Sink) error {
	account, err := d.fetcher.GetAccount(ctx, d.account)
	if err != nil {
		return err
	}
	s.SetAccount(account)

	repos, repoErr := d.fetcher.ListRepositories(ctx, d.account, reposPerPage, "")
	if repoErr == nil {
		s.SetRepositories(repos)
	}
	totals := stats.SumTotals(repos)

	cards := []render.StatCard{
		{Label: "Repositories", Value: account.PublicRepos},
		{Label: "Total Stars", Value: totals.Stars},
		{Label: "Followers", Value: account.Followers},
		{Label: "Following", Value: account.Following},
		{Label: "Total Forks", Value: totals.Forks},
		{Label: "Gists", Value: account.PublicGists},
	}
	if err := d.markup(sink, render.RegionStats, "stats", cards); err != nil {
		return err
	}
	return repoErr
}

// loadLatestActivity renders the recent commits, pull requests and issues.
// A failed fetch shows the same error in all three views.
func (d *Dashboard) loadLatestActivity(ctx context.Context, s *Session, sink Sink) error {
	events, err := d.fetcher.ListEvents(ctx, d.account, eventsPerPage)
	if err != nil {
		for _, region := range []render.Region{render.RegionCommits, render.RegionPRs, render.RegionIssues} {
			_ = d.markup(sink, region, "error", activityError)
		}
		return err
	}
	s.SetEvents(events)

	now := d.now()

	var commits []render.CommitItem
	for _, c := range stats.RecentCommits(events) {
		commits = append(commits, render.CommitItem{
			Message:  c.Message,
			RepoName: c.RepoName,
			Ago:      stats.FormatTimeAgo(c.CreatedAt, now),
		})
	}

	prs := render.ActivityList{
		Kind:  "pr",
		Items: d.activityItems(stats.RecentPullRequests(events)),
		Empty: "No recent pull requests",
	}
	issues := render.ActivityList{
		Kind:  "issue",
		Items: d.activityItems(stats.RecentIssues(events)),
		Empty: "No recent issues",
	}

	if err := d.markup(sink, render.RegionCommits, "commits", commits); err != nil {
		return err
	}
	if err := d.markup(sink, render.RegionPRs, "activity", prs); err != nil {
		return err
	}
	return d.markup(sink, render.RegionIssues, "activity", issues)
}

func (d *Dashboard) activityItems(events []model.Event) []render.ActivityItem {
	now := d.now()
	items := make([]render.ActivityItem, 0, len(events))
	for _, e := range events {
		items = append(items, render.ActivityItem{
			Title:    e.Title,
			URL:      e.URL,
			RepoName: e.RepoName,
			Action:   e.Action,
			Ago:      stats.FormatTimeAgo(e.CreatedAt, now),
		})
	}
	return items
}

// loadTopRepositories renders cards for the six most starred repositories.
func (d *Dashboard) loadTopRepositories(ctx context.Context, s *Session, sink Sink) error {
	repos, err := d.repositories(ctx, s, "updated")
	if err != nil {
		return err
	}

	var cards []render.RepoCard
	for _, r := range stats.TopRepositories(repos) {
		card := render.RepoCard{
			Name:        r.Name,
			URL:         r.URL,
			Description: noDescription,
			Stars:       r.StarsCount,
			Forks:       r.ForksCount,
		}
		if r.Description != nil {
			card.Description = *r.Description
		}
		if r.Language != nil {
			card.Language = *r.Language
			card.LanguageColor = stats.LanguageColor(*r.Language)
		}
		cards = append(cards, card)
	}
	return d.markup(sink, render.RegionTopRepos, "repos", cards)
}

func (d *Dashboard) loadActivityTimeline(ctx context.Context, s *Session, sink Sink) error {
	events, err := d.events(ctx, s, timelinePerPage)
	if err != nil {
		return err
	}

	now := d.now()
	var items []render.TimelineItem
	for _, e := range stats.TimelineEvents(events) {
		items = append(items, render.TimelineItem{
			Ago:         stats.FormatTimeAgo(e.CreatedAt, now),
			Description: stats.Describe(e),
			RepoName:    e.RepoName,
		})
	}
	return d.markup(sink, render.RegionTimeline, "timeline", items)
}

func (d *Dashboard) loadFollowers(ctx context.Context, _ *Session, sink Sink) error {
	followers, err := d.fetcher.ListFollowers(ctx, d.account, followersPerPage)
	if err != nil {
		return err
	}

	cards := make([]render.FollowerCard, 0, len(followers))
	for _, f := range followers {
		cards = append(cards, render.FollowerCard{Login: f.Login, URL: f.URL, AvatarURL: f.AvatarURL})
	}
	return d.markup(sink, render.RegionFollowers, "followers", cards)
}

// loadRepoStatsChart charts stars and forks of the top ten non-fork repositories.
func (d *Dashboard) loadRepoStatsChart(ctx context.Context, s *Session, sink Sink) error {
	repos, err := d.repositories(ctx, s, "")
	if err != nil {
		return err
	}

	top := stats.ChartRepositories(repos)
	names := make([]string, len(top))
	starCounts := make([]int, len(top))
	forkCounts := make([]int, len(top))
	for i, r := range top {
		names[i], starCounts[i], forkCounts[i] = r.Name, r.StarsCount, r.ForksCount
	}

	sink.Chart(render.RegionRepoChart, render.RepoBarChart(names, starCounts, forkCounts))
	return nil
}

// loadLanguageChart charts the eight most used primary languages. Forks are
// counted here, unlike in the repository chart.
func (d *Dashboard) loadLanguageChart(ctx context.Context, s *Session, sink Sink) error {
	repos, err := d.repositories(ctx, s, "")
	if err != nil {
		return err
	}

	langs := stats.CountLanguages(repos)
	labels := make([]string, len(langs))
	counts := make([]int, len(langs))
	colors := make([]string, len(langs))
	for i, l := range langs {
		labels[i], counts[i], colors[i] = l.Language, l.Count, stats.LanguageColor(l.Language)
	}

	sink.Chart(render.RegionLangChart, render.LanguageDoughnutChart(labels, counts, colors))
	return nil
}

func (d *Dashboard) loadHourlyHeatmap(ctx context.Context, s *Session, sink Sink) error {
	events, err := d.events(ctx, s, eventsPerPage)
	if err != nil {
		return err
	}

	heat := stats.BuildHeatmap(events, d.location)

	view := render.HeatmapView{Rows: make([]render.HeatmapRow, stats.Days)}
	for day := 0; day < stats.Days; day++ {
		row := render.HeatmapRow{Day: stats.DayNames[day], Cells: make([]render.HeatmapCell, stats.Hours)}
		for hour := 0; hour < stats.Hours; hour++ {
			count := heat.Counts[day][hour]
			row.Cells[hour] = render.HeatmapCell{
				Count: count,
				Level: heat.Level(day, hour),
				Title: fmt.Sprintf("%s %d:00 - %d commits", stats.DayNames[day], hour, count),
			}
		}
		view.Rows[day] = row
	}
	for hour := 0; hour < stats.Hours; hour += 3 {
		view.HourLabels = append(view.HourLabels, fmt.Sprintf("%d:00", hour))
	}

	return d.markup(sink, render.RegionHeatmap, "heatmap", view)
}

// repositories returns the session's repositories, fetching and caching them
// on a miss.
func (d *Dashboard) repositories(ctx context.Context, s *Session, sort string) ([]model.Repository, error) {
	if repos, ok := s.Repositories(); ok {
		return repos, nil
	}
	repos, err := d.fetcher.ListRepositories(ctx, d.account, reposPerPage, sort)
	if err != nil {
		return nil, err
	}
	s.SetRepositories(repos)
	return repos, nil
}

// events returns the session's events, fetching up to perPage and caching
// them on a miss.
func (d *Dashboard) events(ctx context.Context, s *Session, perPage int) ([]model.Event, error) {
	if events, ok := s.Events(); ok {
		return events, nil
	}
	events, err := d.fetcher.ListEvents(ctx, d.account, perPage)
	if err != nil {
		return nil, err
	}
	s.SetEvents(events)
	return events, nil
}

func (d *Dashboard) markup(sink Sink, region render.Region, fragment string, data any) error {
	html, err := render.Fragment(fragment, data)
	if err != nil {
		d.logger.Error("Failed to render region", "region", region, "error", err)
		return err
	}
	sink.Markup(region, html)
	return nil
}
