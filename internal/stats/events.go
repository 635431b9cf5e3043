// internal/stats/events.go
package stats

import (
	"fmt"
	"strings"
	"time"

	"github-dashboard/internal/model"
)

const (
	// CommitLimit caps both the push events considered and the commits shown.
	CommitLimit = 10
	// PullRequestLimit is the number of pull request events shown.
	PullRequestLimit = 5
	// IssueLimit is the number of issue events shown.
	IssueLimit = 5
	// TimelineLimit is the number of events on the activity timeline.
	TimelineLimit = 20
)

// Commit is one commit of a push event, reduced to its subject line.
type Commit struct {
	Message   string
	RepoName  string
	CreatedAt time.Time
}

// RecentCommits flattens the commits of the first ten push events and keeps
// the first ten. Each message is cut at its first line break.
func RecentCommits(events []model.Event) []Commit {
	pushes := head(FilterEvents(events, model.PushEvent), CommitLimit)

	var commits []Commit
	for _, e := range pushes {
		for _, msg := range e.CommitMessages {
			commits = append(commits, Commit{
				Message:   FirstLine(msg),
				RepoName:  e.RepoName,
				CreatedAt: e.CreatedAt,
			})
		}
	}
	return head(commits, CommitLimit)
}

// RecentPullRequests returns the first five pull request events.
func RecentPullRequests(events []model.Event) []model.Event {
	return head(FilterEvents(events, model.PullRequestEvent), PullRequestLimit)
}

// RecentIssues returns the first five issue events.
func RecentIssues(events []model.Event) []model.Event {
	return head(FilterEvents(events, model.IssuesEvent), IssueLimit)
}

// FilterEvents keeps the events of the given type, preserving order.
func FilterEvents(events []model.Event, eventType string) []model.Event {
	var out []model.Event
	for _, e := range events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// FirstLine returns msg up to its first line break.
func FirstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// TimelineEvents returns the events shown on the activity timeline.
func TimelineEvents(events []model.Event) []model.Event {
	return head(events, TimelineLimit)
}

// Describe renders a one-line summary of what e did.
func Describe(e model.Event) string {
	switch e.Type {
	case model.PushEvent:
		return fmt.Sprintf("Pushed %d commit(s)", len(e.CommitMessages))
	case model.CreateEvent:
		return "Created " + e.RefType
	case model.WatchEvent:
		return "Starred repository"
	case model.ForkEvent:
		return "Forked repository"
	case model.IssuesEvent:
		return e.Action + " issue"
	case model.PullRequestEvent:
		return e.Action + " pull request"
	default:
		return strings.Replace(e.Type, "Event", "", 1)
	}
}
