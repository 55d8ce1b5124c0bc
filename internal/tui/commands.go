package tui

import (
	"bytes"
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/upload"
)

// Message types carrying resolved remote calls back into the Update
// loop. Search and upload messages carry the sequence token of the
// round trip so stale responses are discarded by the orchestrators.
type (
	healthDoneMsg struct {
		resp *api.HealthResponse
		err  error
	}
	searchDoneMsg struct {
		seq  uint64
		resp *api.SearchResponse
		err  error
	}
	uploadDoneMsg struct {
		seq  uint64
		resp *api.UploadResponse
		err  error
	}
)

// checkHealth runs the once-per-session health check.
func checkHealth(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		resp, err := client.Health(ctx)
		return healthDoneMsg{resp: resp, err: err}
	}
}

// runSearch performs the search round trip for the given submission.
func runSearch(client *api.Client, req api.SearchRequest, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		resp, err := client.Search(ctx, req)
		return searchDoneMsg{seq: seq, resp: resp, err: err}
	}
}

// runUpload performs the upload round trip for the given attempt.
func runUpload(client *api.Client, file upload.File, category api.Category, seq uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		resp, err := client.UploadPDF(ctx, file.Name, bytes.NewReader(file.Data), category)
		return uploadDoneMsg{seq: seq, resp: resp, err: err}
	}
}
