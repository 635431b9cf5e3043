// internal/stats/colors.go
package stats

// FallbackLanguageColor is used for languages missing from the table.
const FallbackLanguageColor = "#8b949e"

var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#2b7489",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C++":        "#f34b7d",
	"C":          "#555555",
	"C#":         "#178600",
	"PHP":        "#4F5D95",
	"Ruby":       "#701516",
	"Go":         "#00ADD8",
	"Rust":       "#dea584",
	"Swift":      "#ffac45",
	"Kotlin":     "#F18E33",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Shell":      "#89e051",
	"Dart":       "#00B4AB",
	"Vue":        "#41b883",
	"React":      "#61dafb",
}

// LanguageColor returns the display color of language.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return FallbackLanguageColor
}
