package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/present"
	"github.com/agrofinder/agrofinder/internal/search"
)

var (
	searchCategory string
	searchTopK     int
)

var searchCmd = &cobra.Command{
	Use:   "search <consulta>",
	Short: "Busca semântica one-shot",
	Long: `Run a single semantic search and print the ranked results.

Examples:
  agrofinder search "tendências etanol agro 2025"
  agrofinder search --category organico "análise de redes sociais"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category (anuncio|organico)")
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 10, "number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()
	if err := a.requireAuth(); err != nil {
		return err
	}

	category, err := parseCategory(searchCategory)
	if err != nil {
		return err
	}
	query := strings.TrimSpace(args[0])
	if query == "" {
		return search.ErrEmptyQuery
	}

	resp, err := a.client.Search(cmd.Context(), api.SearchRequest{
		Query:    query,
		Category: category,
		TopK:     searchTopK,
	})
	if err != nil {
		if detail, ok := api.ErrorDetail(err); ok {
			return fmt.Errorf("%s", detail)
		}
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	bold.Printf("%d resultados", resp.TotalResults)
	dim.Printf("  ·  processada em %.0fms\n\n", resp.ProcessingTimeMS)

	// Service order is the ranking; print as received.
	for i, result := range resp.Results {
		badge := present.CategoryFor(result.Category)
		relevance := present.RelevanceFor(result.SimilarityScore)

		bold.Printf("#%d %s\n", i+1, result.Filename)
		tierColor(relevance.Label).Printf("   %s · %s", present.FormatScore(result.SimilarityScore), relevance.Label)
		dim.Printf("  |  %s %s  |  %s  |  %d palavras\n",
			badge.Icon, badge.Label,
			present.FormatDate(result.UploadDate),
			present.WordCount(result.ChunkText))
		fmt.Printf("   %s\n", present.Truncate(result.ChunkText, 300))
		dim.Printf("   %s\n\n", result.GCSURL)
	}
	return nil
}

// tierColor picks the terminal color for a relevance tier label.
func tierColor(label string) *color.Color {
	switch label {
	case "Alta":
		return color.New(color.FgGreen)
	case "Média":
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgHiBlack)
	}
}
