// Package tui is the interactive terminal frontend. A single Bubble Tea
// model wires the session gate, health monitor and the search and
// upload orchestrators together: every remote call runs as a command
// and resolves through a typed message, so all state transitions happen
// on the program's single event loop.
package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/agrofinder/agrofinder/internal/api"
	"github.com/agrofinder/agrofinder/internal/health"
	"github.com/agrofinder/agrofinder/internal/search"
	"github.com/agrofinder/agrofinder/internal/session"
	"github.com/agrofinder/agrofinder/internal/upload"
)

// historySize bounds the processing-time sparkline buffer.
const historySize = 30

// uploadCategories is the cycling order of the upload category picker.
var uploadCategories = []api.Category{api.CategoryAnuncio, api.CategoryOrganico}

// searchCategories is the cycling order of the search filter; empty
// means all categories.
var searchCategories = []api.Category{"", api.CategoryAnuncio, api.CategoryOrganico}

// Model is the Bubble Tea model for the whole client.
type Model struct {
	client *api.Client
	gate   *session.Gate
	log    *zap.Logger

	healthMon  *health.Monitor
	searchOrch *search.Orchestrator
	uploadOrch *upload.Orchestrator

	queryInput textinput.Model
	pathInput  textinput.Model
	spin       spinner.Model
	help       help.Model
	keys       keyMap

	categoryIdx  int    // index into searchCategories
	uploadOpen   bool   // upload panel visible, pathInput focused
	uploadCatIdx int
	readErr      string // local file read error, shown in the panel

	procHistory []float64 // recent processing_time_ms values

	width    int
	quitting bool
}

// New assembles the model around an already constructed client, gate
// and orchestrators.
func New(client *api.Client, gate *session.Gate, mon *health.Monitor, searchOrch *search.Orchestrator, uploadOrch *upload.Orchestrator, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	query := textinput.New()
	query.Placeholder = "Digite sua busca: ex. tendências etanol agro 2025"
	query.CharLimit = 256
	query.Focus()

	path := textinput.New()
	path.Placeholder = "caminho/do/arquivo.pdf"
	path.CharLimit = 512

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return Model{
		client:      client,
		gate:        gate,
		log:         log,
		healthMon:   mon,
		searchOrch:  searchOrch,
		uploadOrch:  uploadOrch,
		queryInput:  query,
		pathInput:   path,
		spin:        spin,
		help:        help.New(),
		keys:        defaultKeyMap(),
		procHistory: make([]float64, 0, historySize),
	}
}

// Init implements tea.Model. A restored session starts its health check
// immediately.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.healthMon.Begin() {
		cmds = append(cmds, checkHealth(m.client))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.busy() {
			return m, cmd
		}
		return m, nil

	case healthDoneMsg:
		m.healthMon.Resolve(msg.resp, msg.err)
		return m, nil

	case searchDoneMsg:
		if m.searchOrch.Resolve(msg.seq, msg.resp, msg.err) {
			if outcome := m.searchOrch.Outcome(); outcome.Kind == search.Success {
				m.procHistory = append(m.procHistory, outcome.ProcessingTimeMS)
				if len(m.procHistory) > historySize {
					m.procHistory = m.procHistory[1:]
				}
			}
		}
		return m, nil

	case uploadDoneMsg:
		m.uploadOrch.Resolve(msg.seq, msg.resp, msg.err)
		return m, nil
	}

	// Cursor blink and other input-internal messages.
	var cmd tea.Cmd
	if m.uploadOpen {
		m.pathInput, cmd = m.pathInput.Update(msg)
	} else {
		m.queryInput, cmd = m.queryInput.Update(msg)
	}
	return m, cmd
}

// updateKey routes key presses. The login surface accepts only enter
// and quit; everything else requires an authenticated session.
func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.gate.Authenticated() {
		if msg.Type == tea.KeyEnter {
			m.gate.Login()
			var cmds []tea.Cmd
			if m.healthMon.Begin() {
				cmds = append(cmds, checkHealth(m.client))
			}
			return m, tea.Batch(cmds...)
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+l":
		// Logout hooks reset the search outcome and query text.
		m.gate.Logout()
		m.queryInput.Reset()
		m.pathInput.Reset()
		m.uploadOpen = false
		m.readErr = ""
		m.procHistory = m.procHistory[:0]
		return m, nil

	case "ctrl+u":
		m.uploadOpen = !m.uploadOpen
		m.readErr = ""
		if m.uploadOpen {
			m.queryInput.Blur()
			return m, m.pathInput.Focus()
		}
		m.pathInput.Blur()
		return m, m.queryInput.Focus()

	case "esc":
		if m.uploadOpen {
			m.uploadOpen = false
			m.pathInput.Blur()
			return m, m.queryInput.Focus()
		}
		return m, nil

	case "tab":
		if m.uploadOpen {
			m.uploadCatIdx = (m.uploadCatIdx + 1) % len(uploadCategories)
			m.uploadOrch.SetCategory(uploadCategories[m.uploadCatIdx])
		} else {
			m.categoryIdx = (m.categoryIdx + 1) % len(searchCategories)
		}
		return m, nil

	case "enter":
		if m.uploadOpen {
			return m.submitUpload()
		}
		return m.submitSearch()
	}

	// Everything else feeds the focused input.
	var cmd tea.Cmd
	if m.uploadOpen {
		m.pathInput, cmd = m.pathInput.Update(msg)
	} else {
		m.queryInput, cmd = m.queryInput.Update(msg)
	}
	return m, cmd
}

// submitSearch moves the orchestrator to Loading synchronously and
// starts the round trip.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	req, seq, err := m.searchOrch.Submit(m.queryInput.Value(), searchCategories[m.categoryIdx])
	if err != nil {
		// Empty queries are simply not submitted, mirroring the
		// disabled search button.
		return m, nil
	}
	return m, tea.Batch(m.spin.Tick, runSearch(m.client, req, seq))
}

// submitUpload reads the file at the typed path, validates it through
// the orchestrator and starts the round trip.
func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	path := m.pathInput.Value()
	if path == "" {
		m.readErr = "Selecione um arquivo primeiro"
		return m, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.readErr = "Não foi possível ler o arquivo: " + err.Error()
		return m, nil
	}
	m.readErr = ""

	file := upload.File{
		Name:      filepath.Base(path),
		Size:      int64(len(data)),
		MediaType: upload.DetectMediaType(path),
		Data:      data,
	}
	if err := m.uploadOrch.SelectFile(file); err != nil {
		// State moved to Failed with the type-mismatch message; the
		// panel renders it.
		return m, nil
	}
	f, category, seq, err := m.uploadOrch.Begin()
	if err != nil {
		return m, nil
	}
	m.pathInput.Reset()
	return m, tea.Batch(m.spin.Tick, runUpload(m.client, f, category, seq))
}

// busy reports whether any operation is in flight, keeping the spinner
// ticking.
func (m Model) busy() bool {
	return m.searchOrch.Outcome().Kind == search.Loading ||
		m.uploadOrch.State().Kind == upload.Uploading
}
