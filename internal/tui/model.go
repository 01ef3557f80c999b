// Package tui is the interactive terminal view of one task list.
package tui

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ltask/internal/session"
	"ltask/internal/tasklist"
)

type pane int

const (
	paneActive pane = iota
	paneResolved
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeFilter
)

// Model is the Bubble Tea model. All state changes go through the session,
// so every mutation that changes the active list is persisted before the
// next key is handled.
type Model struct {
	ctx  context.Context
	sess *session.Session

	pane   pane
	cursor [2]int
	mode   mode
	input  textinput.Model

	status    string
	statusErr bool

	width  int
	height int
}

// New creates a model over sess.
func New(ctx context.Context, sess *session.Session) *Model {
	in := textinput.New()
	in.CharLimit = 500
	return &Model{
		ctx:   ctx,
		sess:  sess,
		input: in,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m, m.updateInput(msg)
		}
		if quit := m.updateNormal(msg); quit {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "tab":
		if m.pane == paneActive {
			m.pane = paneResolved
		} else {
			m.pane = paneActive
		}
	case "j", "down":
		m.move(1)
	case "k", "up":
		m.move(-1)
	case "a":
		m.openInput(modeAdd, m.sess.NewTask(), "new task: ")
	case "e":
		if e, ok := m.selected(paneActive); ok {
			m.sess.StartEditing(e.Index)
			m.openInput(modeEdit, e.Text, "edit: ")
		}
	case "d":
		if e, ok := m.selected(paneActive); ok {
			m.sess.DeleteTask(m.ctx, e.Index)
			m.setStatus("deleted", false)
		}
	case "x", " ":
		if e, ok := m.selected(paneActive); ok {
			m.sess.ResolveTask(m.ctx, e.Index)
			m.setStatus("resolved (tab, u to undo)", false)
		}
	case "u":
		if e, ok := m.selected(paneResolved); ok {
			m.sess.UnresolveTask(m.ctx, e.Index)
			m.setStatus("restored", false)
		}
	case "l":
		m.nextList()
	case "/":
		m.sess.ToggleFilterVisibility()
		if m.sess.Filter().Visible {
			m.openInput(modeFilter, m.sess.Filter().Query, "filter: ")
		}
	}
	m.afterChange()
	return false
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		if m.mode == modeEdit {
			m.sess.CancelEdit()
		}
		m.closeInput()
		return nil
	case tea.KeyEnter:
		m.submit()
		m.afterChange()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	switch m.mode {
	case modeAdd:
		m.sess.SetNewTask(m.input.Value())
	case modeEdit:
		m.sess.UpdateEditDraft(m.input.Value())
	case modeFilter:
		m.sess.SetFilter(m.input.Value())
		m.afterChange()
	}
	return cmd
}

// nextList switches to the stored list after the current one, wrapping
// around. The current list counts even when it has no stored entry yet.
func (m *Model) nextList() {
	ids, err := m.sess.Lists(m.ctx)
	if err != nil {
		m.setStatus(fmt.Sprintf("storage error: %v", err), true)
		return
	}
	current := m.sess.ListID()
	if !slices.Contains(ids, current) {
		ids = append(ids, current)
	}
	slices.Sort(ids)
	if len(ids) < 2 {
		m.setStatus("no other lists", false)
		return
	}

	next := ids[(slices.Index(ids, current)+1)%len(ids)]
	if err := m.sess.SwitchList(m.ctx, next); err != nil {
		m.setStatus(fmt.Sprintf("storage error: %v", err), true)
		return
	}
	m.pane = paneActive
	m.cursor = [2]int{}
	m.setStatus("switched to "+next, false)
}

func (m *Model) submit() {
	switch m.mode {
	case modeAdd:
		if ch := m.sess.SubmitNewTask(m.ctx); !ch.Applied {
			m.setStatus("text required", true)
			return
		}
		m.setStatus("added", false)
		m.cursor[paneActive] = len(m.sess.FilteredActive()) - 1
	case modeEdit:
		if ch := m.sess.SaveEdit(m.ctx); !ch.Applied {
			m.setStatus("text required", true)
			return
		}
		m.setStatus("saved", false)
	}
	m.closeInput()
}

func (m *Model) openInput(md mode, value, prompt string) {
	m.mode = md
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.SetValue("")
}

// view returns the filtered entries shown in p.
func (m *Model) view(p pane) []tasklist.Entry {
	if p == paneResolved {
		return m.sess.FilteredResolved()
	}
	return m.sess.FilteredActive()
}

// selected maps the cursor of p to its entry. It only succeeds when p is
// the focused pane.
func (m *Model) selected(p pane) (tasklist.Entry, bool) {
	if m.pane != p {
		return tasklist.Entry{}, false
	}
	rows := m.view(p)
	c := m.cursor[p]
	if c < 0 || c >= len(rows) {
		return tasklist.Entry{}, false
	}
	return rows[c], true
}

func (m *Model) move(delta int) {
	m.cursor[m.pane] += delta
	m.clamp()
}

// afterChange keeps cursors on a row and surfaces storage errors.
func (m *Model) afterChange() {
	m.clamp()
	if err := m.sess.Err(); err != nil {
		m.setStatus(fmt.Sprintf("storage error: %v", err), true)
	}
}

func (m *Model) clamp() {
	for _, p := range []pane{paneActive, paneResolved} {
		n := len(m.view(p))
		switch {
		case n == 0:
			m.cursor[p] = 0
		case m.cursor[p] >= n:
			m.cursor[p] = n - 1
		case m.cursor[p] < 0:
			m.cursor[p] = 0
		}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}
