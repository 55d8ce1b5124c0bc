package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/upload"
)

var uploadCategory string

var uploadCmd = &cobra.Command{
	Use:   "upload <arquivo.pdf>",
	Short: "Envia e indexa um PDF",
	Long: `Upload a PDF to the service, which stores and indexes it as one
operation.

Examples:
  agrofinder upload relatorio.pdf --category organico
  agrofinder upload campanha.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&uploadCategory, "category", "", "document category (anuncio|organico)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.log.Sync() }()
	if err := a.requireAuth(); err != nil {
		return err
	}

	path := args[0]
	if upload.DetectMediaType(path) != upload.MediaTypePDF {
		return fmt.Errorf("%s", upload.InvalidTypeMessage)
	}

	category, err := parseCategory(uploadCategory)
	if err != nil {
		return err
	}
	if category == "" {
		category, err = promptCategory()
		if err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir arquivo: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("ler metadados do arquivo: %w", err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "enviando")
	reader := io.TeeReader(f, bar)

	resp, err := a.client.UploadPDF(cmd.Context(), filepath.Base(path), reader, category)
	if err != nil {
		if detail, ok := api.ErrorDetail(err); ok {
			return fmt.Errorf("erro ao fazer upload: %s", detail)
		}
		return fmt.Errorf("erro ao fazer upload: %w", err)
	}

	message := resp.Message
	if message == "" {
		message = fmt.Sprintf("%s enviado e indexado com sucesso!", filepath.Base(path))
	}
	fmt.Println("✅", message)
	return nil
}

// promptCategory asks interactively when --category was not given.
func promptCategory() (api.Category, error) {
	prompt := promptui.Select{
		Label: "Categoria do documento",
		Items: []string{"📢 Anúncio", "🌱 Orgânico"},
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("seleção de categoria: %w", err)
	}
	if idx == 0 {
		return api.CategoryAnuncio, nil
	}
	return api.CategoryOrganico, nil
}
