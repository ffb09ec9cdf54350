package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsdeid/pkg/deid"
	"github.com/ukaji3/xlsdeid/pkg/deid/models"
	"github.com/ukaji3/xlsdeid/pkg/deid/session"
)

type stubLoader struct{ table *models.Table }

func (l stubLoader) Load(string) (*models.Table, error) { return l.table, nil }

type stubWriter struct {
	path string
	fail bool
}

func (w *stubWriter) Write(_ *models.Table, path string) error {
	if w.fail {
		return errors.New("read-only file system")
	}
	w.path = path
	return nil
}

func newModel(t *testing.T) (Model, *session.Session, *stubWriter) {
	t.Helper()
	table := &models.Table{Columns: []models.Column{
		{Name: "Name", Values: []interface{}{"Alice", "Bob"}},
		{Name: "Contact", Values: []interface{}{"Alice", "x@y.com"}},
		{Name: "City", Values: []interface{}{"Paris", "Rome"}},
	}}
	w := &stubWriter{}
	sess := session.New(deid.DefaultOptions(), stubLoader{table}, w, nil)
	require.NoError(t, sess.Load("people.xlsx"))
	return New(sess), sess, w
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestPassOneItems(t *testing.T) {
	m, sess, _ := newModel(t)

	assert.Equal(t, session.StatePass1Matched, sess.State())
	assert.Equal(t, []string{"Name"}, m.checked())
	assert.Len(t, m.items, 3)
	assert.Contains(t, m.View(), "Identifying strings: name, dob")
}

func TestToggleAndAddString(t *testing.T) {
	m, sess, _ := newModel(t)

	m = press(t, m, down, space)
	assert.Equal(t, []string{"Name", "Contact"}, m.checked())

	m = press(t, m, runes("a"), runes("city"), enter)
	assert.Equal(t, editNone, m.edit)
	assert.Contains(t, sess.IdentifyingStrings(), "city")
	assert.Equal(t, []string{"Name", "Contact", "City"}, m.checked(), "manual choice kept, new match checked")

	m = press(t, m, runes("r"), runes("name"), enter)
	assert.Equal(t, []string{"Contact", "City"}, m.checked())

	m = press(t, m, runes("a"), runes("zip"), esc)
	assert.NotContains(t, sess.IdentifyingStrings(), "zip")
}

func TestFullWorkflow(t *testing.T) {
	m, sess, w := newModel(t)

	m = press(t, m, enter)
	require.NoError(t, m.Err())
	assert.Equal(t, screenPassTwo, m.screen)
	assert.Equal(t, []string{"Contact"}, m.checked())
	assert.Contains(t, m.View(), "overlaps Name")

	m = press(t, m, enter)
	assert.Equal(t, screenOutput, m.screen)
	assert.Equal(t, "people_deidentified.xlsx", m.input.Value())

	m = press(t, m, enter)
	assert.True(t, m.Done())
	assert.Equal(t, "people_deidentified.xlsx", w.path)
	assert.Equal(t, []string{"City"}, sess.Table().ColumnNames())
	assert.Contains(t, m.View(), "saved as people_deidentified.xlsx")
}

func TestWriteFailureIsRetryable(t *testing.T) {
	m, _, w := newModel(t)
	w.fail = true

	m = press(t, m, enter, enter, enter)
	assert.False(t, m.Done())
	assert.Equal(t, screenOutput, m.screen)
	var we *deid.WriteError
	assert.ErrorAs(t, m.Err(), &we)
	assert.Contains(t, m.View(), "read-only file system")

	w.fail = false
	m = press(t, m, enter)
	assert.True(t, m.Done())
	assert.NoError(t, m.Err())
}

func TestPreview(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, runes("v"))
	require.NotNil(t, m.preview)
	assert.Equal(t, []string{"Name"}, m.preview.ColumnNames())
	assert.Contains(t, m.View(), "Alice")

	m = press(t, m, runes("v"))
	assert.Nil(t, m.preview)
}

func TestOriginalData(t *testing.T) {
	m, _, _ := newModel(t)

	m = press(t, m, runes("o"))
	require.NotNil(t, m.data)
	assert.Equal(t, []string{"Name", "Contact", "City"}, m.data.ColumnNames())
	assert.Contains(t, m.View(), "Original data")
	assert.Contains(t, m.View(), "Rome")

	m = press(t, m, runes("o"))
	assert.Nil(t, m.data)
}

func TestReset(t *testing.T) {
	m, sess, _ := newModel(t)
	ctrlR := tea.KeyMsg{Type: tea.KeyCtrlR}

	m = press(t, m, runes("a"), runes("city"), enter, enter)
	require.Equal(t, screenPassTwo, m.screen)
	require.Equal(t, []string{"Contact"}, sess.Table().ColumnNames())

	m = press(t, m, ctrlR)
	require.NoError(t, m.Err())
	assert.Equal(t, screenPassOne, m.screen)
	assert.Equal(t, session.StatePass1Matched, sess.State())
	assert.Equal(t, []string{"Name", "Contact", "City"}, sess.Table().ColumnNames())
	assert.True(t, sess.Record().Empty())
	assert.Equal(t, []string{"name", "dob"}, sess.IdentifyingStrings())
	assert.Equal(t, []string{"Name"}, m.checked())
	assert.Contains(t, m.View(), "session reset")
}

func TestRenderTable(t *testing.T) {
	table := &models.Table{Columns: []models.Column{
		{Name: "Id", Values: []interface{}{int64(1), int64(22)}},
		{Name: "City", Values: []interface{}{"Paris", nil}},
	}}

	assert.Equal(t, "Id  City\n1   Paris\n22", renderTable(table))
}
