package present

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrofinder/agrofinder/internal/api"
)

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, "Anúncio", CategoryFor(api.CategoryAnuncio).Label)
	assert.Equal(t, "Orgânico", CategoryFor(api.CategoryOrganico).Label)

	// Unknown categories fall back to Relatório instead of failing.
	assert.Equal(t, "Relatório", CategoryFor("whitepaper").Label)
	assert.Equal(t, "📊", CategoryFor("").Icon)
}

func TestRelevanceFor_BoundariesAreInclusiveUpward(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "Alta"},
		{0.70, "Alta"},  // exactly 70 is the higher tier
		{0.699, "Média"},
		{0.50, "Média"}, // exactly 50 is the higher tier
		{0.499, "Baixa"},
		{0.0, "Baixa"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelevanceFor(tt.score).Label, "score %v", tt.score)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "82% relevante", FormatScore(0.82))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 4, WordCount("produção de etanol\tcresce"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", Truncate("curto", 300))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	// Rune-aware: multi-byte text is cut on character boundaries.
	assert.Equal(t, "çãé...", Truncate("çãéíõú", 3))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "10 mar 2025", FormatDate("2025-03-10"))
	assert.Equal(t, "02 jan 2024", FormatDate("2024-01-02T15:30:00Z"))
	assert.Equal(t, "05 dez 2023", FormatDate("2023-12-05T08:00:00"))

	// Unparseable input is rendered unchanged, never an error.
	assert.Equal(t, "ontem", FormatDate("ontem"))
	assert.Equal(t, "", FormatDate(""))
}

func TestRankColor_TopThreeAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		seen[string(RankColor(i))] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, RankColor(3), RankColor(10))
}
