package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/formdesk/internal/form"
)

// SummaryPanel renders the entry count and the leading departments.
func SummaryPanel(s form.Summary) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section id="summary" class="card"><h2>Summary</h2><p>`)
		h.raw(strconv.Itoa(s.Total))
		if s.Total == 1 {
			h.raw(` entry`)
		} else {
			h.raw(` entries`)
		}
		h.raw(`</p>`)
		if len(s.TopDepartments) > 0 {
			h.raw(`<ol class="top-departments">`)
			for _, dc := range s.TopDepartments {
				h.raw(`<li>`)
				h.text(dc.Department)
				h.raw(` <span class="muted">`)
				h.raw(strconv.Itoa(dc.Count))
				h.raw(`</span></li>`)
			}
			h.raw(`</ol>`)
		}
		if s.Total > 0 {
			h.raw(`<a href="/export.csv" download>Export CSV</a>`)
		}
		h.raw(`</section>`)
	})
}

// EntryList renders entries newest first with edit and delete actions.
// The row being edited is highlighted.
func EntryList(entries []form.Entry, editingID string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section id="entries" class="card"><h2>Entries</h2>`)
		if len(entries) == 0 {
			h.raw(`<p class="muted">No entries yet.</p></section>`)
			return
		}

		h.raw(`<table><thead><tr>`)
		for _, f := range []form.Field{form.FieldFullName, form.FieldEmail, form.FieldPhone, form.FieldDepartment, form.FieldCity, form.FieldState, form.FieldPinCode} {
			h.raw(`<th>`)
			h.text(f.Label())
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead><tbody>`)

		for _, e := range entries {
			h.raw(`<tr`)
			h.attr("id", "entry-"+e.ID)
			if e.ID == editingID {
				h.attr("class", "editing")
			}
			h.raw(`>`)
			for _, v := range []string{e.FullName, e.Email, e.Phone, e.Department, e.City, e.State, e.PinCode} {
				h.raw(`<td>`)
				h.text(v)
				h.raw(`</td>`)
			}
			h.raw(`<td><form class="inline" method="post"`)
			h.attr("action", "/entries/"+e.ID+"/edit")
			h.raw(`><button type="submit">Edit</button></form> `)
			h.raw(`<form class="inline" method="post"`)
			h.attr("action", "/entries/"+e.ID+"/delete")
			h.raw(`><button type="submit">Delete</button></form></td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
	})
}
