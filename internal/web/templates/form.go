package templates

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/formdesk/internal/form"
)

var inputTypes = map[form.Field]string{
	form.FieldEmail: "email",
	form.FieldPhone: "tel",
}

// FormPartial renders the entry form. Department and state are selects over
// the catalogue; notes is a textarea; everything else is a single-line input.
func FormPartial(f FormView, departments, states []string) templ.Component {
	return component(func(h *writer) {
		editing := f.State == form.StateEditing

		h.raw(`<form id="entry-form" class="card" method="post" action="/form/submit" data-live="/form" novalidate>`)
		if editing {
			h.raw(`<h2>Edit entry</h2>`)
		} else {
			h.raw(`<h2>New entry</h2>`)
		}

		for _, field := range form.Fields {
			fe := f.Errors.For(field)
			h.raw(`<div class="field`)
			if fe != nil {
				h.raw(` invalid`)
			}
			h.raw(`"><label`)
			h.attr("for", "f-"+field.Key())
			h.raw(`>`)
			h.text(field.Label())
			if field != form.FieldNotes {
				h.raw(` *`)
			}
			h.raw(`</label>`)

			value := f.Values.Get(field)
			switch field {
			case form.FieldDepartment:
				selectInput(h, field, value, departments)
			case form.FieldState:
				selectInput(h, field, value, states)
			case form.FieldNotes:
				h.raw(`<textarea rows="3" id="f-notes" name="notes">`)
				h.text(value)
				h.raw(`</textarea>`)
			default:
				typ := inputTypes[field]
				if typ == "" {
					typ = "text"
				}
				h.raw(`<input`)
				h.attr("type", typ)
				h.attr("id", "f-"+field.Key())
				h.attr("name", field.Key())
				h.attr("value", value)
				h.raw(`>`)
			}

			if fe != nil {
				h.raw(`<p class="error">`)
				h.text(fe.Message)
				h.raw(`</p>`)
			}
			h.raw(`</div>`)
		}

		if editing {
			h.raw(`<button type="submit">Save changes</button> `)
			h.raw(`<button type="submit" formaction="/form/cancel">Cancel</button>`)
		} else {
			h.raw(`<button type="submit">Add entry</button>`)
		}
		h.raw(`</form>`)
	})
}

func selectInput(h *writer, field form.Field, value string, options []string) {
	h.raw(`<select`)
	h.attr("id", "f-"+field.Key())
	h.attr("name", field.Key())
	h.raw(`><option value="">Select…</option>`)

	found := value == ""
	for _, opt := range options {
		h.raw(`<option`)
		h.attr("value", opt)
		if opt == value {
			h.raw(` selected`)
			found = true
		}
		h.raw(`>`)
		h.text(opt)
		h.raw(`</option>`)
	}
	// Keep a value loaded from an entry even if the catalogue changed since.
	if !found {
		h.raw(`<option selected`)
		h.attr("value", value)
		h.raw(`>`)
		h.text(value)
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}
