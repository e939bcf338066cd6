package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateAdding
)

type AddFormModel struct {
	Name string
}

type Model struct {
	ctx      context.Context
	store    storage.Provider
	log      *log.Logger
	state    SessionState
	keys     KeyMap
	help     help.Model
	active   []models.ActiveName
	cursor   int
	form     *huh.Form
	addForm  *AddFormModel
	status   string
	errMsg   string
	fatal    error
	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, store storage.Provider, l *log.Logger) Model {
	m := Model{
		ctx:   ctx,
		store: store,
		log:   l,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.fatal != nil {
		return tea.Quit
	}
	return nil
}

// Err returns the storage fault that ended the session, if any.
func (m Model) Err() error {
	return m.fatal
}

// refresh reloads the active names.
func (m *Model) refresh() {
	active, err := m.store.GetActive(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.active = active
	if m.cursor >= len(m.active) {
		m.cursor = len(m.active) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// fail records err for display. Storage faults also end the session.
func (m *Model) fail(err error) {
	m.status = ""
	m.errMsg = err.Error()
	if storage.IsFault(err) {
		m.fatal = err
		if m.log != nil {
			m.log.Error("Storage failure in tui", "error", err)
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.errMsg = ""
}
