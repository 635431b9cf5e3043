// internal/stats/repos.go
package stats

import (
	"slices"

	"github-dashboard/internal/model"
)

const (
	// TopRepositoriesLimit is the number of cards in the top repositories view.
	TopRepositoriesLimit = 6
	// RepoChartLimit is the number of repositories in the stars/forks chart.
	RepoChartLimit = 10
	// LanguageChartLimit is the number of slices in the language chart.
	LanguageChartLimit = 8
)

// Totals are the derived counters of the profile view.
type Totals struct {
	Stars int
	Forks int
}

// SumTotals adds up stars and forks over repos.
func SumTotals(repos []model.Repository) Totals {
	var t Totals
	for _, r := range repos {
		t.Stars += r.StarsCount
		t.Forks += r.ForksCount
	}
	return t
}

// SortByStars returns a copy of repos ordered by star count, highest first.
// Repositories with equal stars keep their fetch order.
func SortByStars(repos []model.Repository) []model.Repository {
	sorted := slices.Clone(repos)
	slices.SortStableFunc(sorted, func(a, b model.Repository) int {
		return b.StarsCount - a.StarsCount
	})
	return sorted
}

// TopRepositories returns the six most starred repositories, forks included.
func TopRepositories(repos []model.Repository) []model.Repository {
	return head(SortByStars(repos), TopRepositoriesLimit)
}

// ChartRepositories returns the ten most starred repositories that are not forks.
func ChartRepositories(repos []model.Repository) []model.Repository {
	owned := make([]model.Repository, 0, len(repos))
	for _, r := range repos {
		if !r.Fork {
			owned = append(owned, r)
		}
	}
	return head(SortByStars(owned), RepoChartLimit)
}

// LanguageCount is the number of repositories using one primary language.
type LanguageCount struct {
	Language string
	Count    int
}

// CountLanguages counts the primary language of every repository, forks
// included, and returns the eight most common. Equal counts keep the order in
// which the language was first seen.
func CountLanguages(repos []model.Repository) []LanguageCount {
	index := make(map[string]int)
	var counts []LanguageCount
	for _, r := range repos {
		if r.Language == nil || *r.Language == "" {
			continue
		}
		i, ok := index[*r.Language]
		if !ok {
			i = len(counts)
			index[*r.Language] = i
			counts = append(counts, LanguageCount{Language: *r.Language})
		}
		counts[i].Count++
	}

	slices.SortStableFunc(counts, func(a, b LanguageCount) int {
		return b.Count - a.Count
	})
	return head(counts, LanguageChartLimit)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
