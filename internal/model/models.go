// internal/model/models.go
package model

import "time"

// Event types the dashboard distinguishes. Anything else is rendered generically.
const (
	PushEvent        = "PushEvent"
	PullRequestEvent = "PullRequestEvent"
	IssuesEvent      = "IssuesEvent"
	CreateEvent      = "CreateEvent"
	WatchEvent       = "WatchEvent"
	ForkEvent        = "ForkEvent"
)

// Account is the profile of the account the dashboard describes.
type Account struct {
	Login       string
	Name        string
	URL         string
	AvatarURL   string
	PublicRepos int
	Followers   int
	Following   int
	PublicGists int
}

// Repository represents the metadata of a GitHub repository.
type Repository struct {
	Name        string
	URL         string
	Description *string
	Language    *string
	StarsCount  int
	ForksCount  int
	Fork        bool
}

// Event is one entry of an account's public event stream. Only the payload
// fields matching Type are populated.
type Event struct {
	Type      string
	RepoName  string
	CreatedAt time.Time

	// PushEvent
	CommitMessages []string

	// PullRequestEvent, IssuesEvent
	Action string
	Title  string
	URL    string

	// CreateEvent
	RefType string
}

type Follower struct {
	Login     string
	URL       string
	AvatarURL string
}
