package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/formdesk/internal/form"
)

// exportedMsg reports a finished CSV export.
type exportedMsg struct {
	path string
	rows int
}

// errMsg carries a failure from a command back to Update.
type errMsg struct{ err error }

// exportCmd writes entries to a timestamped file under dir. An empty slice
// creates no file and reports form.ErrNothingToExport.
func exportCmd(dir string, entries []form.Entry, now time.Time) tea.Cmd {
	return func() tea.Msg {
		data, err := form.ExportCSV(entries)
		if err != nil {
			return errMsg{err}
		}
		path := filepath.Join(dir, form.ExportFilename(now))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errMsg{fmt.Errorf("write export: %w", err)}
		}
		return exportedMsg{path: path, rows: len(entries)}
	}
}
