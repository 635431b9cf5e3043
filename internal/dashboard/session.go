// internal/dashboard/session.go
package dashboard

import (
	"sync"

	"github-dashboard/internal/model"
)

// Session holds the payloads fetched during one page load so loaders can
// share them. Each slot is unset until a fetch succeeds; a failed fetch never
// touches it. Loaders may race to fill a slot, in which case the last write wins.
type Session struct {
	mu sync.Mutex

	account *model.Account

	repos    []model.Repository
	hasRepos bool

	events    []model.Event
	hasEvents bool
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Account() (*model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account, s.account != nil
}

func (s *Session) SetAccount(a *model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = a
}

// Repositories returns the cached repository list. Callers must not modify it.
func (s *Session) Repositories() ([]model.Repository, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repos, s.hasRepos
}

func (s *Session) SetRepositories(repos []model.Repository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repos, s.hasRepos = repos, true
}

// Events returns the cached events, newest first. Callers must not modify them.
func (s *Session) Events() ([]model.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events, s.hasEvents
}

func (s *Session) SetEvents(events []model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events, s.hasEvents = events, true
}
