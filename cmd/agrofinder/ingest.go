package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrofinder/agrofinder/internal/api"
)

var ingestCategory string

var ingestCmd = &cobra.Command{
	Use:   "ingest <gcs-path>",
	Short: "Indexa manualmente um PDF já armazenado",
	Long: `Trigger indexing for a PDF that already lives in the service's
storage bucket.

Examples:
  agrofinder ingest pdfs/relatorio-2025.pdf --category organico`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCategory, "category", "", "document category (anuncio|organico)")
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()
	if err := a.requireAuth(); err != nil {
		return err
	}

	category, err := parseCategory(ingestCategory)
	if err != nil {
		return err
	}
	if category == "" {
		category, err = promptCategory()
		if err != nil {
			return err
		}
	}

	resp, err := a.client.Ingest(cmd.Context(), args[0], category)
	if err != nil {
		if detail, ok := api.ErrorDetail(err); ok {
			return fmt.Errorf("erro na ingestão: %s", detail)
		}
		return fmt.Errorf("erro na ingestão: %w", err)
	}
	if resp.Message != "" {
		fmt.Println("✅", resp.Message)
	} else {
		fmt.Println("✅ PDF indexado com sucesso")
	}
	return nil
}
