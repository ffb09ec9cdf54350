// Package tui is the interactive terminal front end for a de-identification session.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/session"
)

type screen int

const (
	screenPassOne screen = iota
	screenPassTwo
	screenOutput
	screenDone
)

type editMode int

const (
	editNone editMode = iota
	editAdd
	editRemove
)

// item is a column offered for removal.
type item struct {
	column  string
	detail  string
	flagged bool
	checked bool
}

// Model drives a loaded session through both passes and the output step.
type Model struct {
	sess    *session.Session
	screen  screen
	items   []item
	cursor  int
	edit    editMode
	input   textinput.Model
	preview *models.Table
	data    *models.Table
	status  string
	err     error
	keys    keyMap
	help    help.Model
}

// New creates a model for a session that already has a table loaded.
func New(sess *session.Session) Model {
	m := Model{
		sess:  sess,
		input: textinput.New(),
		keys:  defaultKeys(),
		help:  help.New(),
	}
	m.input.CharLimit = 256
	m.runPassOne()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the last error shown to the user.
func (m Model) Err() error { return m.err }

// Done reports whether the output was written.
func (m Model) Done() bool { return m.screen == screenDone }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.edit != editNone || m.screen == screenOutput {
		return m.updateInput(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case m.screen == screenDone:
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.items) > 0 {
			m.items[m.cursor].checked = !m.items[m.cursor].checked
			m.refreshPreview()
		}
	case key.Matches(keyMsg, m.keys.Preview):
		if m.preview != nil {
			m.preview = nil
		} else {
			m.preview = &models.Table{}
			m.refreshPreview()
		}
	case key.Matches(keyMsg, m.keys.Data):
		if m.data != nil {
			m.data = nil
		} else {
			m.data = m.sess.Preview()
		}
	case key.Matches(keyMsg, m.keys.Reset):
		m.reset()
	case key.Matches(keyMsg, m.keys.Add) && m.screen == screenPassOne:
		return m.startEdit(editAdd, "identifying string to add")
	case key.Matches(keyMsg, m.keys.Remove) && m.screen == screenPassOne:
		return m.startEdit(editRemove, "identifying string to remove")
	case key.Matches(keyMsg, m.keys.Confirm):
		m.confirm()
		if m.screen == screenOutput {
			cmd := m.input.Focus()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) startEdit(mode editMode, placeholder string) (tea.Model, tea.Cmd) {
	m.edit = mode
	m.input.Reset()
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.screen == screenOutput {
			return m, tea.Quit
		}
		m.edit = editNone
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		if m.screen == screenOutput {
			m.write(value)
			if m.screen == screenDone {
				m.input.Blur()
			}
			return m, nil
		}
		m.applyEdit(value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyEdit(value string) {
	var changed bool
	switch m.edit {
	case editAdd:
		changed = m.sess.AddIdentifyingString(value)
	case editRemove:
		changed = m.sess.RemoveIdentifyingString(value)
	}
	m.edit = editNone
	m.input.Blur()
	m.err = nil
	if !changed {
		m.status = "identifying strings unchanged"
		return
	}
	m.status = ""
	m.setPassOneItems(m.sess.PassOne())
}

// reset discards all progress, reloads the source and starts pass one again.
func (m *Model) reset() {
	source := m.sess.Source()
	m.sess.Reset()
	m.screen = screenPassOne
	m.items = nil
	m.cursor = 0
	m.preview = nil
	m.data = nil
	m.status = ""
	m.err = nil
	if err := m.sess.Load(source); err != nil {
		m.err = err
		return
	}
	m.status = "session reset"
	m.runPassOne()
}

func (m *Model) runPassOne() {
	matches, err := m.sess.MatchPassOne()
	if err != nil {
		m.err = err
		return
	}
	m.setPassOneItems(matches)
}

// setPassOneItems lists every column, flagging and checking the matched ones.
// Columns the user already toggled keep their choice.
func (m *Model) setPassOneItems(matches []models.NameMatch) {
	flagged := make(map[string]string, len(matches))
	for _, nm := range matches {
		flagged[nm.Column] = strings.Join(nm.Matched, ", ")
	}
	m.setItems(flagged)
}

func (m *Model) setPassTwoItems(matches []models.OverlapMatch) {
	flagged := make(map[string]string, len(matches))
	for _, om := range matches {
		flagged[om.Column] = "overlaps " + strings.Join(om.Sources, ", ")
	}
	m.setItems(flagged)
}

func (m *Model) setItems(flagged map[string]string) {
	previous := make(map[string]item, len(m.items))
	for _, it := range m.items {
		previous[it.column] = it
	}

	table := m.sess.Table()
	m.items = m.items[:0]
	for _, name := range table.ColumnNames() {
		detail, hit := flagged[name]
		it := item{column: name, detail: detail, flagged: hit, checked: hit}
		if prev, ok := previous[name]; ok && prev.flagged == hit {
			it.checked = prev.checked
		}
		m.items = append(m.items, it)
	}
	if m.cursor >= len(m.items) {
		m.cursor = 0
	}
	m.refreshPreview()
}

func (m Model) checked() []string {
	var cols []string
	for _, it := range m.items {
		if it.checked {
			cols = append(cols, it.column)
		}
	}
	return cols
}

func (m *Model) refreshPreview() {
	if m.preview == nil {
		return
	}
	p, err := m.sess.PreviewColumns(m.checked())
	if err != nil {
		m.err = err
		return
	}
	m.preview = p
}

func (m *Model) confirm() {
	m.err = nil
	switch m.screen {
	case screenPassOne:
		if _, err := m.sess.ConfirmPassOne(m.checked()); err != nil {
			m.err = err
			return
		}
		matches, err := m.sess.MatchPassTwo()
		if err != nil {
			m.err = err
			return
		}
		m.items = nil
		m.cursor = 0
		m.screen = screenPassTwo
		m.setPassTwoItems(matches)
	case screenPassTwo:
		if err := m.sess.ConfirmPassTwo(m.checked()); err != nil {
			m.err = err
			return
		}
		m.items = nil
		m.preview = nil
		m.screen = screenOutput
		m.input.Reset()
		m.input.Placeholder = "output file name"
		m.input.SetValue(m.sess.DefaultOutputName())
	}
}

func (m *Model) write(name string) {
	path, err := m.sess.Write(name)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "De-identified file saved as " + path
	m.screen = screenDone
}
