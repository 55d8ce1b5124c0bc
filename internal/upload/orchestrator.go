// Package upload owns the lifecycle of a single file-selection-and-
// upload attempt: validation, in-flight state, success and failure
// messaging, and form reset.
package upload

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/session"
)

// MediaTypePDF is the only declared media type accepted for upload.
const MediaTypePDF = "application/pdf"

// InvalidTypeMessage is shown when the selected file is not a PDF.
const InvalidTypeMessage = "Por favor, selecione um arquivo PDF válido"

var (
	// ErrNotPDF rejects files whose declared media type is not PDF.
	// Detected locally; the remote service is never contacted.
	ErrNotPDF = errors.New("upload: file is not a PDF")
	// ErrNoFile is returned by Begin when no file is selected.
	ErrNoFile = errors.New("upload: no file selected")
)

// File is the binary blob selected for upload together with its
// declared metadata.
type File struct {
	Name      string
	Size      int64
	MediaType string
	Data      []byte
}

// Kind identifies which variant of State holds.
type Kind int

const (
	Empty Kind = iota
	Selected
	Uploading
	Succeeded
	Failed
)

// State is the tagged union over the upload form. File is meaningful
// only for Selected and Uploading, Message only for Succeeded and
// Failed. Category is always carried so the choice survives a reset.
type State struct {
	Kind     Kind
	File     *File
	Category api.Category
	Message  string
}

// Orchestrator drives one upload attempt at a time. After success or
// failure the selection is cleared; a fresh selection is always
// required before the next attempt.
type Orchestrator struct {
	gate  *session.Gate
	log   *zap.Logger
	seq   uint64
	state State
}

// NewOrchestrator creates an orchestrator gated on the session. The
// category defaults to Anúncio.
func NewOrchestrator(gate *session.Gate, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		gate:  gate,
		log:   log,
		state: State{Kind: Empty, Category: api.CategoryAnuncio},
	}
}

// SelectFile validates the file's declared media type and stores it.
// A non-PDF file moves the state to Failed without storing anything and
// without any network traffic.
func (o *Orchestrator) SelectFile(f File) error {
	if f.MediaType != MediaTypePDF {
		o.state = State{Kind: Failed, Category: o.state.Category, Message: InvalidTypeMessage}
		return ErrNotPDF
	}
	o.state = State{Kind: Selected, File: &f, Category: o.state.Category}
	return nil
}

// SetCategory updates the category tag. It has no effect while an
// upload is in flight.
func (o *Orchestrator) SetCategory(c api.Category) {
	if o.state.Kind == Uploading {
		return
	}
	o.state.Category = c
}

// Begin transitions Selected to Uploading and hands the caller the file
// and category for the round trip, plus the sequence token for Resolve.
func (o *Orchestrator) Begin() (File, api.Category, uint64, error) {
	if !o.gate.Authenticated() {
		return File{}, "", 0, session.ErrNotAuthenticated
	}
	if o.state.Kind != Selected || o.state.File == nil {
		return File{}, "", 0, ErrNoFile
	}
	o.seq++
	file := *o.state.File
	o.state = State{Kind: Uploading, File: o.state.File, Category: o.state.Category}
	o.log.Info("upload started",
		zap.String("filename", file.Name),
		zap.Int64("size", file.Size),
		zap.String("category", string(o.state.Category)),
		zap.Uint64("seq", o.seq))
	return file, o.state.Category, o.seq, nil
}

// Resolve applies the upload response or its failure. The selection is
// cleared on both paths so a new selection is required either way.
// Stale responses are discarded and Resolve reports whether the state
// was applied.
func (o *Orchestrator) Resolve(seq uint64, resp *api.UploadResponse, err error) bool {
	if seq != o.seq || o.state.Kind != Uploading {
		o.log.Debug("stale upload response discarded", zap.Uint64("seq", seq))
		return false
	}
	filename := ""
	if o.state.File != nil {
		filename = o.state.File.Name
	}
	if err != nil {
		message := err.Error()
		if detail, ok := api.ErrorDetail(err); ok {
			message = detail
		}
		o.log.Warn("upload failed", zap.String("filename", filename), zap.Error(err))
		o.state = State{Kind: Failed, Category: o.state.Category, Message: fmt.Sprintf("Erro ao fazer upload: %s", message)}
		return true
	}
	message := resp.Message
	if message == "" {
		message = fmt.Sprintf("%s enviado e indexado com sucesso!", filename)
	}
	o.log.Info("upload completed", zap.String("filename", filename), zap.String("message", message))
	o.state = State{Kind: Succeeded, Category: o.state.Category, Message: message}
	return true
}

// Reset returns the form to Empty with the default category.
func (o *Orchestrator) Reset() {
	o.state = State{Kind: Empty, Category: api.CategoryAnuncio}
}

// State returns the current form state.
func (o *Orchestrator) State() State {
	return o.state
}
