// Package tui is the terminal frontend of the entry form.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JonMunkholm/formdesk/internal/catalog"
	"github.com/JonMunkholm/formdesk/internal/form"
)

// helpBarHeight and statusHeight are the lines reserved under the panes.
const (
	helpBarHeight = 1
	statusHeight  = 1
	borderChrome  = 2
)

// Options configures a Model.
type Options struct {
	Catalog   *catalog.Catalog
	ExportDir string
	TopN      int
	Now       func() time.Time
}

// Model is the root Bubble Tea model. Focus moves over the form fields in
// display order and then the entry list.
type Model struct {
	session   *form.Session
	options   *catalog.Catalog
	exportDir string
	topN      int
	now       func() time.Time

	inputs []textinput.Model // One per form.Fields position; unused for selects
	focus  int               // Index into form.Fields, or listFocus
	cursor int               // Highlighted entry in the list

	status    string
	statusErr bool

	formKeys formKeys
	listKeys listKeys
	help     help.Model
	width    int
	height   int
}

// listFocus is the focus value of the entry list.
var listFocus = len(form.Fields)

// NewModel creates a model over session with the first field focused.
func NewModel(session *form.Session, opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.TopN <= 0 {
		opts.TopN = form.DefaultTopDepartments
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := Model{
		session:   session,
		options:   opts.Catalog,
		exportDir: opts.ExportDir,
		topN:      opts.TopN,
		now:       opts.Now,
		inputs:    make([]textinput.Model, len(form.Fields)),
		formKeys:  formKeyMap(),
		listKeys:  listKeyMap(),
		help:      help.New(),
	}
	for i, f := range form.Fields {
		if isSelect(f) {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholder(f)
		in.CharLimit = 200
		m.inputs[i] = in
	}
	m.syncInputs()
	m.setFocus(0)
	return m
}

func isSelect(f form.Field) bool {
	return f == form.FieldDepartment || f == form.FieldState
}

func placeholder(f form.Field) string {
	switch f {
	case form.FieldEmail:
		return "name@example.com"
	case form.FieldPhone:
		return "10 digits"
	case form.FieldPinCode:
		return "6 digits"
	case form.FieldNotes:
		return "optional"
	}
	return ""
}

// Session returns the form session driven by the model.
func (m Model) Session() *form.Session { return m.session }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case exportedMsg:
		m.setStatus(fmt.Sprintf("Exported %d entries to %s", msg.rows, msg.path), false)
		slog.Info("entries exported", "rows", msg.rows, "path", msg.path)
		return m, nil

	case errMsg:
		m.setStatus(form.FormatUserError(msg.err), true)
		if !form.IsUserFacing(msg.err) {
			slog.Error("tui command failed", "error", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		if m.focus == listFocus {
			return m.handleListKey(msg)
		}
		return m.handleFormKey(msg)
	}

	return m.updateInput(msg)
}

// handleFormKey processes keys while a form field has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := form.Fields[m.focus]

	switch {
	case key.Matches(msg, m.formKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.formKeys.Export):
		return m, m.export()
	case key.Matches(msg, m.formKeys.Next):
		m.session.Touch(field)
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.formKeys.Prev):
		m.session.Touch(field)
		return m, m.setFocus(m.focus - 1)
	case key.Matches(msg, m.formKeys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, m.formKeys.Cancel):
		m.cancel()
		return m, nil
	}

	if isSelect(field) {
		if key.Matches(msg, m.formKeys.Cycle) {
			opts := m.selectOptions(field)
			cur := m.session.Values().Get(field)
			if msg.String() == "left" {
				m.session.SetValue(field, catalog.Prev(opts, cur))
			} else {
				m.session.SetValue(field, catalog.Next(opts, cur))
			}
		}
		return m, nil
	}

	return m.updateInput(msg)
}

// handleListKey processes keys while the entry list has focus.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.session.Store().Entries()

	switch {
	case key.Matches(msg, m.listKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.listKeys.Export):
		return m, m.export()
	case key.Matches(msg, m.listKeys.Next):
		return m, m.setFocus(0)
	case key.Matches(msg, m.listKeys.Prev):
		return m, m.setFocus(listFocus - 1)
	case key.Matches(msg, m.listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.listKeys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.listKeys.Edit):
		if len(entries) == 0 {
			return m, nil
		}
		e := entries[m.cursor]
		if err := m.session.StartEdit(e.ID); err != nil {
			m.setStatus(form.FormatUserError(err), true)
			return m, nil
		}
		m.syncInputs()
		m.setStatus("Editing "+e.FullName, false)
		return m, m.setFocus(0)
	case key.Matches(msg, m.listKeys.Delete):
		if len(entries) == 0 {
			return m, nil
		}
		e := entries[m.cursor]
		wasEditing := m.session.EditingID() == e.ID
		if err := m.session.Delete(e.ID); err != nil {
			m.setStatus(form.FormatUserError(err), true)
			return m, nil
		}
		if wasEditing {
			m.syncInputs()
		}
		m.clampCursor()
		m.setStatus("Entry deleted", false)
		slog.Info("entry deleted", "entry_id", e.ID)
	case key.Matches(msg, m.listKeys.Cancel):
		m.cancel()
	}
	return m, nil
}

// updateInput forwards msg to the focused text input and records its value.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus == listFocus || isSelect(form.Fields[m.focus]) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.session.SetValue(form.Fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

func (m *Model) submit() {
	res, err := m.session.Submit()
	if errs, ok := form.AsErrors(err); ok {
		m.setStatus(fmt.Sprintf("%d field(s) need attention", len(errs)), true)
		return
	}
	if err != nil {
		// The entry under edit vanished; the values stay for a new submit.
		m.setStatus(form.FormatUserError(err), true)
		return
	}

	if res.Created {
		m.setStatus("Entry added", false)
		slog.Info("entry created", "entry_id", res.Entry.ID)
	} else {
		m.setStatus("Entry updated", false)
		slog.Info("entry updated", "entry_id", res.Entry.ID)
	}
	m.cursor = 0
	m.syncInputs()
	m.setFocus(0)
}

func (m *Model) cancel() {
	if m.session.State() != form.StateEditing {
		return
	}
	m.session.Cancel()
	m.syncInputs()
	m.setStatus("Edit cancelled", false)
}

func (m *Model) export() tea.Cmd {
	return exportCmd(m.exportDir, m.session.Store().Entries(), m.now())
}

// setFocus moves focus to i, wrapping around fields and list.
func (m *Model) setFocus(i int) tea.Cmd {
	n := listFocus + 1
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range m.inputs {
		if isSelect(form.Fields[j]) {
			continue
		}
		if j == m.focus {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// syncInputs copies the session's working values into the text inputs.
func (m *Model) syncInputs() {
	v := m.session.Values()
	for i, f := range form.Fields {
		if isSelect(f) {
			continue
		}
		m.inputs[i].SetValue(v.Get(f))
	}
}

func (m *Model) clampCursor() {
	n := m.session.Store().Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) selectOptions(f form.Field) []string {
	if f == form.FieldDepartment {
		return m.options.Departments
	}
	return m.options.States
}

// View renders the form and list panes with a status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	formWidth, listWidth := paneWidths(m.width)
	height := m.height - borderChrome - helpBarHeight - statusHeight
	if height < 1 {
		height = 1
	}

	formStyle, listStyle := focusedBorder(), unfocusedBorder()
	if m.focus == listFocus {
		formStyle, listStyle = unfocusedBorder(), focusedBorder()
	}
	formPane := formStyle.Width(formWidth - borderChrome).Height(height).Render(m.viewForm())
	listPane := listStyle.Width(listWidth - borderChrome).Height(height).Render(m.viewList())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, formPane, listPane)

	var helpView string
	if m.focus == listFocus {
		helpView = m.help.View(m.listKeys)
	} else {
		helpView = m.help.View(m.formKeys)
	}

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.viewStatus(), helpView)
}

func (m Model) viewForm() string {
	var b strings.Builder
	if m.session.State() == form.StateEditing {
		b.WriteString(titleStyle.Render("Edit entry"))
	} else {
		b.WriteString(titleStyle.Render("New entry"))
	}
	b.WriteString("\n\n")

	errs := m.session.VisibleErrors()
	values := m.session.Values()
	for i, f := range form.Fields {
		label := f.Label()
		if f != form.FieldNotes {
			label += " *"
		}
		if i == m.focus {
			b.WriteString(focusedLabelStyle.Render("> " + label))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
		}
		b.WriteString("\n  ")

		if isSelect(f) {
			v := values.Get(f)
			if v == "" {
				v = mutedStyle.Render("select…")
			}
			b.WriteString("‹ " + v + " ›")
		} else {
			b.WriteString(m.inputs[i].View())
		}
		b.WriteString("\n")

		if fe := errs.For(f); fe != nil {
			b.WriteString("  " + errorStyle.Render(fe.Message) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	sum := m.session.Summary(m.topN)

	b.WriteString(titleStyle.Render(fmt.Sprintf("Entries (%d)", sum.Total)))
	b.WriteString("\n")
	if len(sum.TopDepartments) > 0 {
		parts := make([]string, len(sum.TopDepartments))
		for i, dc := range sum.TopDepartments {
			parts[i] = fmt.Sprintf("%s %d", dc.Department, dc.Count)
		}
		b.WriteString(mutedStyle.Render("Top: " + strings.Join(parts, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	entries := m.session.Store().Entries()
	if len(entries) == 0 {
		b.WriteString(mutedStyle.Render("No entries yet."))
		return b.String()
	}

	editing := m.session.EditingID()
	for i, e := range entries {
		line := fmt.Sprintf("%s  %s  %s, %s", e.FullName, e.Department, e.City, e.State)
		if e.ID == editing {
			line = editingRowStyle.Render(line + " (editing)")
		}
		if m.focus == listFocus && i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return okStyle.Render(m.status)
}
