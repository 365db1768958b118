package form

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

// ExportColumns is the header row of the CSV export.
var ExportColumns = []string{
	"ID",
	FieldFullName.Label(),
	FieldEmail.Label(),
	FieldPhone.Label(),
	FieldDepartment.Label(),
	FieldCity.Label(),
	FieldState.Label(),
	FieldPinCode.Label(),
	FieldNotes.Label(),
	"Created At",
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// WriteCSV writes entries, in the given order, as CSV to w.
// Nothing is written for an empty slice and ErrNothingToExport is returned.
func WriteCSV(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNothingToExport
	}

	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(exportRecord(e)); err != nil {
			return fmt.Errorf("write entry %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV renders entries as CSV bytes.
func ExportCSV(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportFilename returns the download filename for an export generated at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("entries_%s.csv", t.Format("20060102_150405"))
}

func exportRecord(e Entry) []string {
	return []string{
		e.ID,
		e.FullName,
		e.Email,
		e.Phone,
		e.Department,
		e.City,
		e.State,
		e.PinCode,
		newlineReplacer.Replace(e.Notes),
		e.CreatedAt.Format(time.RFC3339),
	}
}
