// Package present derives display-only attributes from search results:
// category badges, relevance tiers, truncation, word counts and date
// formatting. Everything here is a pure function over an immutable
// result.
package present

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agrofinder/agrofinder/internal/api"
)

// CategoryBadge is the display classification of a document category.
type CategoryBadge struct {
	Label string
	Icon  string
	Color lipgloss.Color
}

var categoryBadges = map[api.Category]CategoryBadge{
	api.CategoryAnuncio:  {Label: "Anúncio", Icon: "📢", Color: lipgloss.Color("33")},
	api.CategoryOrganico: {Label: "Orgânico", Icon: "🌱", Color: lipgloss.Color("40")},
}

// relatorioBadge is the fallback classification for any category value
// the client does not recognize.
var relatorioBadge = CategoryBadge{Label: "Relatório", Icon: "📊", Color: lipgloss.Color("135")}

// CategoryFor returns the badge for a category, falling back to the
// Relatório classification for unrecognized values instead of failing.
func CategoryFor(c api.Category) CategoryBadge {
	if badge, ok := categoryBadges[c]; ok {
		return badge
	}
	return relatorioBadge
}

// Relevance is the three-level display tier derived from a similarity
// score.
type Relevance struct {
	Label string
	Color lipgloss.Color
}

// RelevanceFor maps a similarity score in [0,1] to its tier. The
// boundaries are inclusive upward: exactly 0.70 is Alta and exactly
// 0.50 is Média.
func RelevanceFor(score float64) Relevance {
	percentage := score * 100
	switch {
	case percentage >= 70:
		return Relevance{Label: "Alta", Color: lipgloss.Color("46")}
	case percentage >= 50:
		return Relevance{Label: "Média", Color: lipgloss.Color("226")}
	default:
		return Relevance{Label: "Baixa", Color: lipgloss.Color("245")}
	}
}

// FormatScore renders the similarity score as a whole percentage,
// e.g. "82% relevante".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.0f%% relevante", score*100)
}

// WordCount counts whitespace-delimited tokens in the chunk text. A
// display metric only, not authoritative.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Truncate limits text to at most max runes, appending "..." only when
// something was cut. The underlying result is never mutated.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// ptMonths are the pt-BR month abbreviations for the short date form.
var ptMonths = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate parses an upload date and renders the pt-BR short form,
// e.g. "02 jan 2025". Unparseable input is rendered unchanged.
func FormatDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return fmt.Sprintf("%02d %s %d", t.Day(), ptMonths[t.Month()-1], t.Year())
		}
	}
	return raw
}

// RankColor returns the badge color for a zero-based rank index: gold,
// silver and bronze for the first three, dim gray beyond.
func RankColor(index int) lipgloss.Color {
	switch index {
	case 0:
		return lipgloss.Color("220")
	case 1:
		return lipgloss.Color("250")
	case 2:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("240")
	}
}
