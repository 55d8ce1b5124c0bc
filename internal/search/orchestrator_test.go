package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/present"
	"github.com/agrofinder/agrofinder/internal/session"
)

func newAuthedGate(t *testing.T) *session.Gate {
	t.Helper()
	gate := session.NewGate(session.NewFileStore(filepath.Join(t.TempDir(), "session")), nil)
	gate.Login()
	return gate
}

func TestSubmit_RejectsEmptyQuery(t *testing.T) {
	o := NewOrchestrator(newAuthedGate(t), nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, _, err := o.Submit(text, "")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	// Validation errors leave the state untouched.
	assert.Equal(t, Idle, o.Outcome().Kind)
}

func TestSubmit_RequiresAuthentication(t *testing.T) {
	gate := session.NewGate(session.NewFileStore(filepath.Join(t.TempDir(), "session")), nil)
	o := NewOrchestrator(gate, nil)

	_, _, err := o.Submit("etanol", "")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestSubmit_TransitionsToLoadingSynchronously(t *testing.T) {
	o := NewOrchestrator(newAuthedGate(t), nil)

	// From every prior state the transition happens before any network
	// activity.
	req, seq, err := o.Submit("  etanol 2025  ", api.CategoryOrganico)
	require.NoError(t, err)
	assert.Equal(t, Loading, o.Outcome().Kind)
	assert.Equal(t, "etanol 2025", o.Query())
	assert.Equal(t, "etanol 2025", req.Query)
	assert.Equal(t, api.CategoryOrganico, req.Category)
	assert.Equal(t, 10, req.TopK)

	o.Resolve(seq, nil, errors.New("boom"))
	assert.Equal(t, Failure, o.Outcome().Kind)

	_, _, err = o.Submit("milho", "")
	require.NoError(t, err)
	assert.Equal(t, Loading, o.Outcome().Kind)
	assert.Empty(t, o.Outcome().Message)
}

func TestResolve_SuccessPreservesServiceOrder(t *testing.T) {
	o := NewOrchestrator(newAuthedGate(t), nil)
	_, seq, err := o.Submit("soja", "")
	require.NoError(t, err)

	results := []api.SearchResult{
		{DocumentID: "low", SimilarityScore: 0.40},
		{DocumentID: "high", SimilarityScore: 0.95},
	}
	applied := o.Resolve(seq, &api.SearchResponse{Results: results, ProcessingTimeMS: 12.0}, nil)
	assert.True(t, applied)

	outcome := o.Outcome()
	assert.Equal(t, Success, outcome.Kind)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "low", outcome.Results[0].DocumentID)
	assert.Equal(t, "high", outcome.Results[1].DocumentID)
	assert.Equal(t, 12.0, outcome.ProcessingTimeMS)
}

func TestResolve_FailureUsesDetailThenFallback(t *testing.T) {
	o := NewOrchestrator(newAuthedGate(t), nil)

	_, seq, _ := o.Submit("soja", "")
	o.Resolve(seq, nil, &api.Error{StatusCode: 500, Detail: "índice indisponível"})
	assert.Equal(t, Failure, o.Outcome().Kind)
	assert.Equal(t, "índice indisponível", o.Outcome().Message)
	assert.Empty(t, o.Outcome().Results)

	_, seq, _ = o.Submit("soja", "")
	o.Resolve(seq, nil, errors.New("dial tcp: connection refused"))
	assert.Equal(t, FallbackMessage, o.Outcome().Message)
}

func TestResolve_GatewayErrorBodyNeverShown(t *testing.T) {
	// A proxy in front of the service answers with an HTML body. The
	// user sees the fallback message, never the raw body.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body>502 Bad Gateway: upstream connect error</body></html>"))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	o := NewOrchestrator(newAuthedGate(t), nil)

	req, seq, err := o.Submit("soja", "")
	require.NoError(t, err)
	resp, err := client.Search(context.Background(), req)

	o.Resolve(seq, resp, err)
	assert.Equal(t, Failure, o.Outcome().Kind)
	assert.Equal(t, FallbackMessage, o.Outcome().Message)
}

func TestResolve_DiscardsStaleResponses(t *testing.T) {
	o := NewOrchestrator(newAuthedGate(t), nil)

	_, first, err := o.Submit("soja", "")
	require.NoError(t, err)
	_, second, err := o.Submit("milho", "")
	require.NoError(t, err)

	// The older round trip resolves after the newer submission and must
	// be discarded.
	applied := o.Resolve(first, &api.SearchResponse{Results: []api.SearchResult{{DocumentID: "stale"}}}, nil)
	assert.False(t, applied)
	assert.Equal(t, Loading, o.Outcome().Kind)

	applied = o.Resolve(second, &api.SearchResponse{Results: []api.SearchResult{{DocumentID: "fresh"}}}, nil)
	assert.True(t, applied)
	assert.Equal(t, "fresh", o.Outcome().Results[0].DocumentID)
}

func TestLogout_ResetsOutcomeAndQuery(t *testing.T) {
	gate := newAuthedGate(t)
	o := NewOrchestrator(gate, nil)

	_, seq, _ := o.Submit("soja", "")
	o.Resolve(seq, &api.SearchResponse{Results: []api.SearchResult{{DocumentID: "x"}}}, nil)
	require.Equal(t, Success, o.Outcome().Kind)

	gate.Logout()
	assert.Equal(t, Idle, o.Outcome().Kind)
	assert.Empty(t, o.Query())
	assert.Empty(t, o.Outcome().Results)
}

func TestRoundTrip_AgainstMockService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "etanol 2025", req.Query)
		assert.Equal(t, api.CategoryOrganico, req.Category)
		assert.Equal(t, 10, req.TopK)

		_ = json.NewEncoder(w).Encode(api.SearchResponse{
			Query: req.Query,
			Results: []api.SearchResult{{
				DocumentID:      "doc-1",
				Filename:        "tendencias.pdf",
				Category:        api.CategoryOrganico,
				ChunkText:       "produção de etanol",
				SimilarityScore: 0.82,
				UploadDate:      "2025-03-10",
				GCSURL:          "https://storage/doc-1.pdf",
			}},
			TotalResults:     1,
			ProcessingTimeMS: 37.2,
		})
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	o := NewOrchestrator(newAuthedGate(t), nil)

	req, seq, err := o.Submit("etanol 2025", api.CategoryOrganico)
	require.NoError(t, err)
	assert.Equal(t, Loading, o.Outcome().Kind)

	resp, err := client.Search(context.Background(), req)
	o.Resolve(seq, resp, err)

	outcome := o.Outcome()
	require.Equal(t, Success, outcome.Kind)
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, api.CategoryOrganico, outcome.Results[0].Category)
	assert.Equal(t, 0.82, outcome.Results[0].SimilarityScore)

	// 0.82 lands in the Alta tier under the Orgânico badge.
	assert.Equal(t, "Alta", present.RelevanceFor(outcome.Results[0].SimilarityScore).Label)
	assert.Equal(t, "Orgânico", present.CategoryFor(outcome.Results[0].Category).Label)
}
