package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/health"
	"github.com/agrofinder/agrofinder/internal/present"
	"github.com/agrofinder/agrofinder/internal/search"
	"github.com/agrofinder/agrofinder/internal/upload"
)

const (
	sparklineWidth  = 20
	sparklineHeight = 1

	chunkPreviewLen       = 300
	chunkPreviewLenNarrow = 200
	narrowWidth           = 80
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("40")).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	healthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	checkingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	unhealthyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("196")).
				Padding(0, 1)

	successBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("46")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("46")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("40")).
			Padding(0, 1)

	chunkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	selectedCatStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("40")).
				Padding(0, 1)

	unselectedCatStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.gate.Authenticated() {
		return m.loginView()
	}
	return m.mainView()
}

// loginView is the only surface shown while the session is not
// authenticated.
func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" 🌾 AgroFinder ") + "\n\n")
	b.WriteString(titleStyle.Render("Busca semântica inteligente de documentos agro") + "\n\n")
	b.WriteString(subtitleStyle.Render("pressione enter para entrar") + "\n\n")
	b.WriteString(dimStyle.Render("[enter] entrar  [ctrl+c] encerrar") + "\n")
	return b.String()
}

func (m Model) mainView() string {
	var b strings.Builder
	b.WriteString(m.headerLine() + "\n\n")
	b.WriteString(m.searchBar() + "\n")
	if m.uploadOpen {
		b.WriteString("\n" + m.uploadPanel() + "\n")
	}
	b.WriteString("\n" + m.resultsView() + "\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// headerLine renders the title, the health badge and the processing
// time sparkline.
func (m Model) headerLine() string {
	parts := []string{headerStyle.Render(" 🌾 AgroFinder ")}
	parts = append(parts, m.healthBadge())
	if info := m.healthMon.Info(); info != nil {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("%s · %d vetores", info.VectorDB, info.TotalVectors)))
	}
	if len(m.procHistory) > 1 {
		parts = append(parts, m.procSparkline())
	}
	return strings.Join(parts, "  ")
}

func (m Model) healthBadge() string {
	switch m.healthMon.Status() {
	case health.StatusHealthy:
		return healthyStyle.Render("● Sistema operacional")
	case health.StatusChecking:
		return checkingStyle.Render("● Verificando...")
	default:
		return unhealthyStyle.Render("● Sistema offline")
	}
}

// procSparkline charts the recent search processing times.
func (m Model) procSparkline() string {
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range m.procHistory {
		spark.Push(v)
	}
	return dimStyle.Render("tempo ") + titleStyle.Render(spark.View())
}

func (m Model) searchBar() string {
	category := "Todas categorias"
	if c := searchCategories[m.categoryIdx]; c != "" {
		badge := present.CategoryFor(c)
		category = badge.Icon + " " + badge.Label
	}
	return m.queryInput.View() + "\n" + dimStyle.Render("filtro: ") + valueStyle.Render(category)
}

// resultsView renders the body per the search outcome: loading, empty
// state, no results, failure or the ranked cards.
func (m Model) resultsView() string {
	outcome := m.searchOrch.Outcome()
	switch outcome.Kind {
	case search.Loading:
		return m.spin.View() + " Buscando documentos relevantes..."

	case search.Failure:
		return errorBannerStyle.Render(outcome.Message)

	case search.Success:
		if len(outcome.Results) == 0 {
			return titleStyle.Render("Nenhum resultado encontrado") + "\n" +
				subtitleStyle.Render("Tente reformular sua busca ou usar outros termos.")
		}
		return m.resultCards(outcome)

	default:
		// Idle: nothing submitted yet this session.
		return titleStyle.Render("Busca Semântica de Documentos") + "\n" +
			subtitleStyle.Render("Digite uma busca acima para encontrar documentos relevantes.")
	}
}

func (m Model) resultCards(outcome search.Outcome) string {
	plural := "resultados encontrados"
	if len(outcome.Results) == 1 {
		plural = "resultado encontrado"
	}
	header := titleStyle.Render(fmt.Sprintf("%d %s", len(outcome.Results), plural)) +
		dimStyle.Render(fmt.Sprintf("  ·  processada em %.0fms", outcome.ProcessingTimeMS))

	cards := make([]string, 0, len(outcome.Results)+1)
	cards = append(cards, header)
	for i, result := range outcome.Results {
		cards = append(cards, m.resultCard(i, result))
	}
	return strings.Join(cards, "\n")
}

// resultCard renders one ranked result. The order is the service's
// ranking; index 0 is the top hit.
func (m Model) resultCard(index int, result api.SearchResult) string {
	rankStyle := lipgloss.NewStyle().Foreground(present.RankColor(index)).Bold(true)
	category := present.CategoryFor(result.Category)
	relevance := present.RelevanceFor(result.SimilarityScore)

	badges := []string{
		lipgloss.NewStyle().Foreground(category.Color).Render(category.Icon + " " + category.Label),
		lipgloss.NewStyle().Foreground(relevance.Color).Render(present.FormatScore(result.SimilarityScore) + " · " + relevance.Label),
		dimStyle.Render(present.FormatDate(result.UploadDate)),
		dimStyle.Render(fmt.Sprintf("%d palavras", present.WordCount(result.ChunkText))),
	}
	if result.PageNumber != nil {
		badges = append(badges, dimStyle.Render(fmt.Sprintf("pág. %d", *result.PageNumber)))
	}

	previewLen := chunkPreviewLen
	if m.width > 0 && m.width < narrowWidth {
		previewLen = chunkPreviewLenNarrow
	}

	var b strings.Builder
	b.WriteString(rankStyle.Render(fmt.Sprintf("#%d", index+1)) + " " + valueStyle.Render(result.Filename) + "\n")
	b.WriteString(strings.Join(badges, dimStyle.Render("  |  ")) + "\n")
	b.WriteString(chunkStyle.Render(present.Truncate(result.ChunkText, previewLen)) + "\n")
	b.WriteString(dimStyle.Render(result.GCSURL))
	return cardStyle.Render(b.String())
}

// uploadPanel renders the category picker, the path input and the
// current upload state.
func (m Model) uploadPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload de Novo Documento PDF") + "\n\n")

	state := m.uploadOrch.State()
	options := make([]string, 0, len(uploadCategories))
	for _, c := range uploadCategories {
		badge := present.CategoryFor(c)
		label := badge.Icon + " " + badge.Label
		if c == state.Category {
			options = append(options, selectedCatStyle.Render(label))
		} else {
			options = append(options, unselectedCatStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(options, " ") + dimStyle.Render("  [tab] alternar") + "\n\n")
	b.WriteString(m.pathInput.View() + "\n")

	if m.readErr != "" {
		b.WriteString("\n" + errorBannerStyle.Render(m.readErr))
	}

	switch state.Kind {
	case upload.Selected:
		if state.File != nil {
			b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%s (%.2f MB)", state.File.Name, float64(state.File.Size)/1024/1024)))
		}
	case upload.Uploading:
		b.WriteString("\n" + m.spin.View() + " Processando...")
	case upload.Succeeded:
		b.WriteString("\n" + successBannerStyle.Render("✅ "+state.Message))
	case upload.Failed:
		b.WriteString("\n" + errorBannerStyle.Render(state.Message))
	}

	return panelStyle.Render(b.String())
}
