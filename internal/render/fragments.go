// internal/render/fragments.go
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

// StatCard is one labeled counter of the profile view.
type StatCard struct {
	Label string
	Value int
}

type CommitItem struct {
	Message  string
	RepoName string
	Ago      string
}

// ActivityItem is a pull request or issue entry.
type ActivityItem struct {
	Title    string
	URL      string
	RepoName string
	Action   string
	Ago      string
}

// ActivityList is a titled list of activity items with its empty-state text.
type ActivityList struct {
	Kind  string // "pr" or "issue"
	Items []ActivityItem
	Empty string
}

type RepoCard struct {
	Name          string
	URL           string
	Description   string
	Language      string
	LanguageColor string
	Stars         int
	Forks         int
}

type TimelineItem struct {
	Ago         string
	Description string
	RepoName    string
}

type FollowerCard struct {
	Login     string
	URL       string
	AvatarURL string
}

type HeatmapCell struct {
	Count int
	Level int
	Title string
}

type HeatmapRow struct {
	Day   string
	Cells []HeatmapCell
}

type HeatmapView struct {
	Rows       []HeatmapRow
	HourLabels []string
}

// Fragment executes the named fragment template with data.
func Fragment(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render fragment %q: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
