// internal/github/client.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-dashboard/internal/errors"
	"github-dashboard/internal/model"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com/"

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance against baseURL.
// An empty token leaves requests anonymous; otherwise the token is attached
// through an oauth2 transport.
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	gh := github.NewClient(hc)
	gh.BaseURL = u

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// Fetch issues a GET for path relative to the base URL and decodes the JSON
// body into v. Every failure is logged and returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context, path string, v any) error {
	path = strings.TrimPrefix(path, "/")

	req, err := c.gh.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return c.fail(path, err)
	}

	c.logger.Debug("Fetching", "path", path)
	if _, err := c.gh.Do(ctx, req, v); err != nil {
		return c.fail(path, err)
	}
	return nil
}

func (c *Client) fail(path string, err error) error {
	c.logger.Error("Fetch failed", "path", path, "error", err)
	return &custom_errors.FetchError{Path: path, Err: err}
}

// GetAccount fetches the profile of login.
func (c *Client) GetAccount(ctx context.Context, login string) (*model.Account, error) {
	var user github.User
	if err := c.Fetch(ctx, "users/"+url.PathEscape(login), &user); err != nil {
		return nil, err
	}
	return toInternalAccount(&user), nil
}

// ListRepositories fetches a single page of up to perPage repositories owned
// by login. sort is passed through when non-empty (e.g. "updated").
func (c *Client) ListRepositories(ctx context.Context, login string, perPage int, sort string) ([]model.Repository, error) {
	path := fmt.Sprintf("users/%s/repos?per_page=%d", url.PathEscape(login), perPage)
	if sort != "" {
		path += "&sort=" + url.QueryEscape(sort)
	}

	var repos []*github.Repository
	if err := c.Fetch(ctx, path, &repos); err != nil {
		return nil, err
	}

	out := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toInternalRepository(r))
	}
	return out, nil
}

// ListEvents fetches the newest perPage public events of login.
func (c *Client) ListEvents(ctx context.Context, login string, perPage int) ([]model.Event, error) {
	path := fmt.Sprintf("users/%s/events?per_page=%d", url.PathEscape(login), perPage)

	var events []*github.Event
	if err := c.Fetch(ctx, path, &events); err != nil {
		return nil, err
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		out = append(out, c.toInternalEvent(e))
	}
	return out, nil
}

// ListFollowers fetches up to perPage followers of login.
func (c *Client) ListFollowers(ctx context.Context, login string, perPage int) ([]model.Follower, error) {
	path := fmt.Sprintf("users/%s/followers?per_page=%d", url.PathEscape(login), perPage)

	var users []*github.User
	if err := c.Fetch(ctx, path, &users); err != nil {
		return nil, err
	}

	out := make([]model.Follower, 0, len(users))
	for _, u := range users {
		out = append(out, model.Follower{
			Login:     u.GetLogin(),
			URL:       u.GetHTMLURL(),
			AvatarURL: u.GetAvatarURL(),
		})
	}
	return out, nil
}

// toInternalAccount translates a github.User object to our internal model.Account.
func toInternalAccount(u *github.User) *model.Account {
	return &model.Account{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		URL:         u.GetHTMLURL(),
		AvatarURL:   u.GetAvatarURL(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicGists: u.GetPublicGists(),
	}
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		Name:        r.GetName(),
		URL:         r.GetHTMLURL(),
		Description: nonEmpty(r.Description),
		Language:    nonEmpty(r.Language),
		StarsCount:  r.GetStargazersCount(),
		ForksCount:  r.GetForksCount(),
		Fork:        r.GetFork(),
	}
}

// toInternalEvent translates a github.Event, decoding the payload fields the
// dashboard shows. An unparseable payload leaves a generic event behind.
func (c *Client) toInternalEvent(e *github.Event) model.Event {
	ev := model.Event{
		Type:      e.GetType(),
		RepoName:  e.GetRepo().GetName(),
		CreatedAt: e.GetCreatedAt().Time,
	}
	if e.RawPayload == nil {
		return ev
	}

	payload, err := e.ParsePayload()
	if err != nil {
		c.logger.Debug("Failed to parse event payload", "type", ev.Type, "repo", ev.RepoName, "error", err)
		return ev
	}

	switch p := payload.(type) {
	case *github.PushEvent:
		for _, commit := range p.Commits {
			ev.CommitMessages = append(ev.CommitMessages, commit.GetMessage())
		}
	case *github.PullRequestEvent:
		ev.Action = p.GetAction()
		ev.Title = p.GetPullRequest().GetTitle()
		ev.URL = p.GetPullRequest().GetHTMLURL()
	case *github.IssuesEvent:
		ev.Action = p.GetAction()
		ev.Title = p.GetIssue().GetTitle()
		ev.URL = p.GetIssue().GetHTMLURL()
	case *github.CreateEvent:
		ev.RefType = p.GetRefType()
	}
	return ev
}

// nonEmpty collapses an empty string to nil so optional fields have one "absent" form.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
