// internal/github/client_test.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github-dashboard/internal/errors"
	"github-dashboard/internal/model"
)

// setupTestClient creates a httptest server and a client pointing to it.
func setupTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, err := NewClient(server.URL, "", logger)
	require.NoError(t, err)

	return client, server
}

func TestClient_Fetch(t *testing.T) {
	t.Run("decodes a successful response", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/octocat", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"), "requests must be anonymous without a token")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"login": "octocat", "public_repos": 8}`)
		})
		client, server := setupTestClient(t, handler)
		defer server.Close()

		var out struct {
			Login       string `json:"login"`
			PublicRepos int    `json:"public_repos"`
		}
		err := client.Fetch(context.Background(), "/users/octocat", &out)

		require.NoError(t, err)
		assert.Equal(t, "octocat", out.Login)
		assert.Equal(t, 8, out.PublicRepos)
	})

	t.Run("does not retry a server error", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		client, server := setupTestClient(t, handler)
		defer server.Close()

		err := client.Fetch(context.Background(), "users/octocat", &struct{}{})

		require.Error(t, err)
		var fetchErr *custom_errors.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "users/octocat", fetchErr.Path)
		var ghErr *github.ErrorResponse
		require.ErrorAs(t, err, &ghErr)
		assert.Equal(t, http.StatusServiceUnavailable, ghErr.Response.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
	})

	t.Run("treats a rate limit response like any other failure", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()))
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprintln(w, `{"message": "API rate limit exceeded"}`)
		})
		client, server := setupTestClient(t, handler)
		defer server.Close()

		start := time.Now()
		err := client.Fetch(context.Background(), "users/octocat", &struct{}{})

		var fetchErr *custom_errors.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Less(t, time.Since(start), time.Minute, "client must not wait for the reset")
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
	})

	t.Run("reports a malformed body as a failure", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{"login": `)
		})
		client, server := setupTestClient(t, handler)
		defer server.Close()

		err := client.Fetch(context.Background(), "users/octocat", &struct{}{})

		var fetchErr *custom_errors.FetchError
		assert.True(t, errors.As(err, &fetchErr))
	})
}

func TestClient_AttachesToken(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprintln(w, `{}`)
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client, err := NewClient(server.URL+"/", "secret", logger)
	require.NoError(t, err)

	require.NoError(t, client.Fetch(context.Background(), "users/octocat", &struct{}{}))
}

func TestClient_ListRepositories(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		fmt.Fprintln(w, `[
			{"name": "hello", "html_url": "https://github.com/octocat/hello", "description": "hi", "language": "Go", "stargazers_count": 5, "forks_count": 2, "fork": false},
			{"name": "fork", "description": "", "stargazers_count": 1, "fork": true}
		]`)
	})
	client, server := setupTestClient(t, handler)
	defer server.Close()

	repos, err := client.ListRepositories(context.Background(), "octocat", 100, "updated")

	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "hello", repos[0].Name)
	require.NotNil(t, repos[0].Language)
	assert.Equal(t, "Go", *repos[0].Language)
	assert.Equal(t, 5, repos[0].StarsCount)
	assert.Equal(t, 2, repos[0].ForksCount)
	assert.True(t, repos[1].Fork)
	assert.Nil(t, repos[1].Description, "empty description is absent")
	assert.Nil(t, repos[1].Language)
}

func TestClient_ListEvents(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/events", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("per_page"))
		fmt.Fprintln(w, `[
			{"type": "PushEvent", "repo": {"name": "octocat/hello"}, "created_at": "2024-01-02T03:04:05Z",
			 "payload": {"commits": [{"message": "fix bug\n\nlong"}, {"message": "add test"}]}},
			{"type": "PullRequestEvent", "repo": {"name": "octocat/hello"}, "created_at": "2024-01-01T00:00:00Z",
			 "payload": {"action": "opened", "pull_request": {"title": "Add feature", "html_url": "https://github.com/octocat/hello/pull/1"}}},
			{"type": "IssuesEvent", "repo": {"name": "octocat/hello"}, "created_at": "2024-01-01T00:00:00Z",
			 "payload": {"action": "closed", "issue": {"title": "Broken", "html_url": "https://github.com/octocat/hello/issues/2"}}},
			{"type": "CreateEvent", "repo": {"name": "octocat/new"}, "created_at": "2024-01-01T00:00:00Z",
			 "payload": {"ref_type": "branch"}},
			{"type": "GollumEvent", "repo": {"name": "octocat/wiki"}, "created_at": "2024-01-01T00:00:00Z"}
		]`)
	})
	client, server := setupTestClient(t, handler)
	defer server.Close()

	events, err := client.ListEvents(context.Background(), "octocat", 30)

	require.NoError(t, err)
	require.Len(t, events, 5)

	assert.Equal(t, model.PushEvent, events[0].Type)
	assert.Equal(t, "octocat/hello", events[0].RepoName)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), events[0].CreatedAt.UTC())
	assert.Equal(t, []string{"fix bug\n\nlong", "add test"}, events[0].CommitMessages)

	assert.Equal(t, "opened", events[1].Action)
	assert.Equal(t, "Add feature", events[1].Title)
	assert.Equal(t, "https://github.com/octocat/hello/pull/1", events[1].URL)

	assert.Equal(t, "closed", events[2].Action)
	assert.Equal(t, "Broken", events[2].Title)

	assert.Equal(t, "branch", events[3].RefType)

	assert.Equal(t, "GollumEvent", events[4].Type)
	assert.Equal(t, "octocat/wiki", events[4].RepoName)
}

func TestClient_GetAccountAndFollowers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat":
			fmt.Fprintln(w, `{"login": "octocat", "public_repos": 8, "followers": 3, "following": 1}`)
		case "/users/octocat/followers":
			assert.Equal(t, "24", r.URL.Query().Get("per_page"))
			fmt.Fprintln(w, `[{"login": "hubot", "html_url": "https://github.com/hubot", "avatar_url": "https://avatars/hubot"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	client, server := setupTestClient(t, handler)
	defer server.Close()

	account, err := client.GetAccount(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, 8, account.PublicRepos)
	assert.Equal(t, 3, account.Followers)
	assert.Equal(t, 1, account.Following)
	assert.Equal(t, 0, account.PublicGists, "missing counters default to zero")

	followers, err := client.ListFollowers(context.Background(), "octocat", 24)
	require.NoError(t, err)
	assert.Equal(t, []model.Follower{{Login: "hubot", URL: "https://github.com/hubot", AvatarURL: "https://avatars/hubot"}}, followers)

	_, err = client.GetAccount(context.Background(), "ghost")
	assert.Error(t, err)
}
