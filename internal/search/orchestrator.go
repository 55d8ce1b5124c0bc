// Package search owns the lifecycle of the current semantic search:
// submission, loading, success or failure, and reset on logout.
package search

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/session"
)

// defaultTopK is the fixed number of results requested per search.
const defaultTopK = 10

// FallbackMessage is shown when a search fails without a structured
// detail from the service.
const FallbackMessage = "Erro ao realizar busca. Tente novamente."

// ErrEmptyQuery rejects submissions whose trimmed text is empty. It is
// a validation error, surfaced immediately and never logged as a
// system failure.
var ErrEmptyQuery = errors.New("search: empty query")

// Kind identifies which variant of Outcome holds.
type Kind int

const (
	Idle Kind = iota
	Loading
	Success
	Failure
)

// Outcome is the tagged union over the mutually exclusive states of the
// current search. Exactly one Kind holds at a time; Results and
// ProcessingTimeMS are meaningful only for Success, Message only for
// Failure.
type Outcome struct {
	Kind             Kind
	Results          []api.SearchResult
	ProcessingTimeMS float64
	Message          string
}

// Orchestrator enforces at-most-one conceptual current query. Responses
// are applied through sequence tokens so a stale in-flight response can
// never overwrite a newer submission.
type Orchestrator struct {
	gate    *session.Gate
	log     *zap.Logger
	seq     uint64
	query   string
	outcome Outcome
}

// NewOrchestrator creates an orchestrator gated on the session. Logout
// resets the outcome and query text.
func NewOrchestrator(gate *session.Gate, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	o := &Orchestrator{gate: gate, log: log}
	gate.OnLogout(o.Reset)
	return o
}

// Submit validates the query and synchronously transitions to Loading,
// recording text as the current query. It returns the request to send
// and the sequence token to pass back to Resolve. The caller owns the
// actual network round trip.
func (o *Orchestrator) Submit(text string, category api.Category) (api.SearchRequest, uint64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return api.SearchRequest{}, 0, ErrEmptyQuery
	}
	if !o.gate.Authenticated() {
		return api.SearchRequest{}, 0, session.ErrNotAuthenticated
	}

	o.seq++
	o.query = trimmed
	o.outcome = Outcome{Kind: Loading}
	o.log.Info("search submitted",
		zap.String("query", trimmed),
		zap.String("category", string(category)),
		zap.Uint64("seq", o.seq))

	return api.SearchRequest{
		Query:    trimmed,
		Category: category,
		TopK:     defaultTopK,
	}, o.seq, nil
}

// Resolve applies the response for the round trip identified by seq.
// Responses for anything but the latest submission are discarded, and
// Resolve reports whether the outcome was applied. The result order is
// the service's ranking and is preserved untouched.
func (o *Orchestrator) Resolve(seq uint64, resp *api.SearchResponse, err error) bool {
	if seq != o.seq || o.outcome.Kind != Loading {
		o.log.Debug("stale search response discarded", zap.Uint64("seq", seq))
		return false
	}
	if err != nil {
		message := FallbackMessage
		if detail, ok := api.ErrorDetail(err); ok {
			message = detail
		}
		o.log.Warn("search failed", zap.Uint64("seq", seq), zap.Error(err))
		o.outcome = Outcome{Kind: Failure, Message: message}
		return true
	}
	o.outcome = Outcome{
		Kind:             Success,
		Results:          resp.Results,
		ProcessingTimeMS: resp.ProcessingTimeMS,
	}
	o.log.Info("search completed",
		zap.Uint64("seq", seq),
		zap.Int("results", len(resp.Results)),
		zap.Float64("processing_ms", resp.ProcessingTimeMS))
	return true
}

// Reset returns to Idle and clears the current query text. No outcome
// survives a logout.
func (o *Orchestrator) Reset() {
	o.query = ""
	o.outcome = Outcome{Kind: Idle}
}

// Query returns the text of the current query, used to distinguish the
// empty state from the no-results state.
func (o *Orchestrator) Query() string {
	return o.query
}

// Outcome returns the current outcome.
func (o *Orchestrator) Outcome() Outcome {
	return o.outcome
}
