package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/formdesk/internal/catalog"
	"github.com/JonMunkholm/formdesk/internal/form"
)

var fixedNow = time.Date(2026, 5, 4, 13, 14, 15, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(form.NewSession(form.NewStore()), Options{
		Catalog:   &catalog.Catalog{Departments: []string{"Sales", "Finance"}, States: []string{"Goa", "Kerala"}},
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return fixedNow },
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	return send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	right    = tea.KeyMsg{Type: tea.KeyRight}
	left     = tea.KeyMsg{Type: tea.KeyLeft}
	down     = tea.KeyMsg{Type: tea.KeyDown}
)

// fillValid types a complete valid entry starting from the first field and
// leaves focus on the notes field.
func fillValid(m Model, name string) Model {
	m = typeText(m, name)
	m = send(m, tab)
	m = typeText(m, "asha@example.com")
	m = send(m, tab)
	m = typeText(m, "9876543210")
	m = send(m, tab, right, tab) // Sales
	m = typeText(m, "Panaji")
	m = send(m, tab, right, tab) // Goa
	m = typeText(m, "403001")
	return send(m, tab)
}

func TestNewModel_FocusesFirstField(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.focus)
	assert.True(t, m.inputs[0].Focused())
	assert.Equal(t, form.StateIdle, m.session.State())
}

func TestTyping_UpdatesWorkingValues(t *testing.T) {
	m := newTestModel(t)
	m = typeText(m, "Asha")
	assert.Equal(t, "Asha", m.session.Values().FullName)
}

func TestTab_TouchesFieldBeingLeft(t *testing.T) {
	m := newTestModel(t)

	m = send(m, tab)
	assert.Equal(t, 1, m.focus)
	require.Len(t, m.session.VisibleErrors(), 1)
	assert.Equal(t, form.FieldFullName, m.session.VisibleErrors()[0].Field)
	assert.Contains(t, m.View(), "Full name is required")
	assert.NotContains(t, m.View(), "Email is required")

	m = send(m, shiftTab)
	assert.Equal(t, 0, m.focus)
	assert.NotNil(t, m.session.VisibleErrors().For(form.FieldEmail))
}

func TestFocus_WrapsThroughList(t *testing.T) {
	m := newTestModel(t)
	m = send(m, shiftTab)
	assert.Equal(t, listFocus, m.focus)
	m = send(m, tab)
	assert.Equal(t, 0, m.focus)
}

func TestSelect_CyclesOptions(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tab, tab, tab) // department

	m = send(m, right)
	assert.Equal(t, "Sales", m.session.Values().Department)
	m = send(m, right)
	assert.Equal(t, "Finance", m.session.Values().Department)
	m = send(m, right)
	assert.Equal(t, "Sales", m.session.Values().Department, "wraps around")
	m = send(m, left)
	assert.Equal(t, "Finance", m.session.Values().Department)

	m = typeText(m, "x")
	assert.Equal(t, "Finance", m.session.Values().Department, "selects ignore typing")
}

func TestSubmit_InvalidShowsAllErrors(t *testing.T) {
	m := newTestModel(t)
	m = send(m, enter)

	assert.Equal(t, 0, m.session.Store().Len())
	assert.True(t, m.statusErr)
	view := m.View()
	assert.Contains(t, view, "Full name is required")
	assert.Contains(t, view, "Please select a state")
}

func TestSubmit_ValidAddsEntryAndResetsForm(t *testing.T) {
	m := newTestModel(t)
	m = fillValid(m, "Asha Rao")
	m = send(m, enter)

	require.Equal(t, 1, m.session.Store().Len())
	assert.Equal(t, "Asha Rao", m.session.Store().Entries()[0].FullName)
	assert.Equal(t, "Entry added", m.status)
	assert.Equal(t, 0, m.focus)
	assert.Equal(t, "", m.inputs[0].Value())
	assert.Contains(t, m.View(), "Entries (1)")
	assert.Contains(t, m.View(), "Top: Sales 1")
}

func TestList_EditAndResubmit(t *testing.T) {
	m := newTestModel(t)
	m = send(fillValid(m, "First"), enter)
	m = send(fillValid(m, "Second"), enter)

	// Focus the list, move to the older entry, edit it.
	m = send(m, shiftTab, down, enter)
	require.Equal(t, form.StateEditing, m.session.State())
	first := m.session.Store().Entries()[1]
	assert.Equal(t, first.ID, m.session.EditingID())
	assert.Equal(t, "First", m.inputs[0].Value())
	assert.Contains(t, m.View(), "Edit entry")

	m = typeText(m, " Updated")
	m = send(m, enter)

	entries := m.session.Store().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "First Updated", entries[1].FullName)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.Equal(t, form.StateIdle, m.session.State())
	assert.Equal(t, "Entry updated", m.status)
}

func TestEsc_CancelsEdit(t *testing.T) {
	m := newTestModel(t)
	m = send(fillValid(m, "Asha"), enter)
	m = send(m, shiftTab, enter)
	require.Equal(t, form.StateEditing, m.session.State())

	m = typeText(m, "zzz")
	m = send(m, esc)
	assert.Equal(t, form.StateIdle, m.session.State())
	assert.Zero(t, m.session.Values())
	assert.Equal(t, "", m.inputs[0].Value())
	assert.Equal(t, "Asha", m.session.Store().Entries()[0].FullName)
}

func TestList_DeleteEditedEntryResetsForm(t *testing.T) {
	m := newTestModel(t)
	m = send(fillValid(m, "Asha"), enter)
	m = send(m, shiftTab, enter)
	require.Equal(t, form.StateEditing, m.session.State())

	m = send(m, shiftTab, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Equal(t, 0, m.session.Store().Len())
	assert.Equal(t, form.StateIdle, m.session.State())
	assert.Equal(t, "", m.inputs[0].Value())
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "No entries yet.")
}

func TestExport_EmptyStoreWritesNothing(t *testing.T) {
	m := newTestModel(t)

	cmd := m.export()
	msg := cmd()
	em, ok := msg.(errMsg)
	require.True(t, ok, "got %T", msg)
	assert.ErrorIs(t, em.err, form.ErrNothingToExport)

	files, err := os.ReadDir(m.exportDir)
	require.NoError(t, err)
	assert.Empty(t, files)

	m = send(m, msg)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "EXP001")
}

func TestExport_WritesTimestampedFile(t *testing.T) {
	m := newTestModel(t)
	m = send(fillValid(m, "Asha"), enter)

	msg := m.export()()
	done, ok := msg.(exportedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, filepath.Join(m.exportDir, "entries_20260504_131415.csv"), done.path)
	assert.Equal(t, 1, done.rows)

	data, err := os.ReadFile(done.path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\ufeffID,"))

	m = send(m, msg)
	assert.False(t, m.statusErr)
	assert.Contains(t, m.status, "Exported 1 entries")
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView_BeforeWindowSize(t *testing.T) {
	m := NewModel(form.NewSession(form.NewStore()), Options{})
	assert.Equal(t, "Initializing...", m.View())
}

func TestPaneWidths(t *testing.T) {
	f, l := paneWidths(100)
	assert.Equal(t, 45, f)
	assert.Equal(t, 55, l)

	f, l = paneWidths(60)
	assert.Equal(t, 40, f)
	assert.Equal(t, 20, l)

	f, l = paneWidths(0)
	assert.Zero(t, f)
	assert.Zero(t, l)
}

// TestModel_Teatest_AddEntry drives a whole session through a real program.
func TestModel_Teatest_AddEntry(t *testing.T) {
	store := form.NewStore()
	m := NewModel(form.NewSession(store), Options{
		Catalog:   &catalog.Catalog{Departments: []string{"Sales"}, States: []string{"Goa"}},
		ExportDir: t.TempDir(),
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))

	tm.Type("Asha Rao")
	tm.Send(tab)
	tm.Type("asha@example.com")
	tm.Send(tab)
	tm.Type("9876543210")
	tm.Send(tab)
	tm.Send(right)
	tm.Send(tab)
	tm.Type("Panaji")
	tm.Send(tab)
	tm.Send(right)
	tm.Send(tab)
	tm.Type("403001")
	tm.Send(enter)
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, 1, final.Session().Store().Len())
	e := store.Entries()[0]
	assert.Equal(t, "Asha Rao", e.FullName)
	assert.Equal(t, "Sales", e.Department)
	assert.Equal(t, "Goa", e.State)
}
