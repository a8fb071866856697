package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skipwise/skipselect/internal/skips"
)

// ViewState represents the current phase of the selection view.
type ViewState int

const (
	// ViewStateLoading indicates the catalogue fetch is outstanding.
	ViewStateLoading ViewState = iota
	// ViewStateList indicates the card list is being shown.
	ViewStateList
	// ViewStateError indicates the fetch failed and the error panel is shown.
	ViewStateError
	// ViewStateQuitting indicates the application is exiting.
	ViewStateQuitting
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// skipsLoadedMsg delivers the outcome of one catalogue fetch.
type skipsLoadedMsg struct {
	result skips.LoadResult
}

// SelectModel is the Bubble Tea model for choosing a skip. It owns the
// selection state: at most one option is selected, selecting another option
// replaces it, and there is no deselect affordance.
type SelectModel struct {
	ctx      context.Context
	fetch    skips.Fetcher
	location string

	loader *skips.Loader

	state  ViewState
	items  []skips.SkipOption
	cursor int
	// selected indexes items; -1 means no selection yet.
	selected int
	errMsg   string

	loading *LoadingState

	width  int
	height int

	// choice is set when the user confirms with a selection, for the CLI
	// to read back after the program exits.
	choice *skips.SkipOption
}

// NewSelectModel creates the selection view. The fetch function is invoked
// through a fresh Loader on every (re)load so a torn-down view can never be
// mutated by a late response.
func NewSelectModel(ctx context.Context, fetch skips.Fetcher, location string) *SelectModel {
	return &SelectModel{
		ctx:      ctx,
		fetch:    fetch,
		location: location,
		state:    ViewStateLoading,
		selected: -1,
		loading:  NewLoadingState("Fetching skip options..."),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Init starts the spinner and the initial fetch.
func (m *SelectModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.startLoad())
}

// startLoad begins a fetch through a fresh loader and returns the command
// that waits for its result. A closed result channel means the load was
// torn down; no message is emitted in that case.
func (m *SelectModel) startLoad() tea.Cmd {
	if m.loader != nil {
		m.loader.Close()
	}
	m.loader = skips.NewLoader(m.fetch)
	results := m.loader.Start(m.ctx)

	return func() tea.Msg {
		result, ok := <-results
		if !ok {
			return nil
		}
		return skipsLoadedMsg{result: result}
	}
}

// teardown cancels any in-flight fetch and marks the model as quitting.
func (m *SelectModel) teardown() {
	if m.loader != nil {
		m.loader.Close()
	}
	m.state = ViewStateQuitting
}

// Update handles messages and updates the model state.
func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case skipsLoadedMsg:
		return m.handleLoaded(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == ViewStateLoading {
		return m, m.loading.Update(msg)
	}
	return m, nil
}

// handleLoaded applies a fetch outcome.
func (m *SelectModel) handleLoaded(msg skipsLoadedMsg) (tea.Model, tea.Cmd) {
	switch msg.result.State {
	case skips.StateReady:
		m.items = msg.result.Items
		m.cursor = 0
		m.selected = -1
		m.errMsg = ""
		m.state = ViewStateList
	case skips.StateFailed:
		m.errMsg = msg.result.Message
		m.state = ViewStateError
	case skips.StatePending:
		// Loaders never deliver Pending; nothing to do.
	}
	return m, nil
}

// handleKey routes keyboard input by view state.
func (m *SelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.teardown()
		return m, tea.Quit
	}

	switch m.state {
	case ViewStateList:
		return m.handleListKey(msg)
	case ViewStateError:
		if msg.String() == "r" {
			return m.reload()
		}
	case ViewStateLoading, ViewStateQuitting:
		// Ignore everything else while loading or quitting.
	}
	return m, nil
}

// handleListKey processes navigation, selection and the continue action.
func (m *SelectModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.items) > 0 {
			m.selected = m.cursor
		}
	case "c":
		if m.selected >= 0 && m.selected < len(m.items) {
			chosen := m.items[m.selected]
			m.choice = &chosen
			m.teardown()
			return m, tea.Quit
		}
	}
	return m, nil
}

// reload performs the full-reload recovery action: back to the loading
// state with a fresh fetch. Failed attempts are never retried in place.
func (m *SelectModel) reload() (tea.Model, tea.Cmd) {
	m.state = ViewStateLoading
	m.items = nil
	m.cursor = 0
	m.selected = -1
	m.errMsg = ""
	m.loading = NewLoadingState("Fetching skip options...")
	return m, tea.Batch(m.loading.Init(), m.startLoad())
}

// Choice returns the confirmed skip option, or nil when the user quit
// without confirming.
func (m *SelectModel) Choice() *skips.SkipOption {
	return m.choice
}

// Selected returns the currently selected option, or nil.
func (m *SelectModel) Selected() *skips.SkipOption {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
