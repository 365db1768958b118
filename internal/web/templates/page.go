package templates

import (
	"github.com/a-h/templ"
)

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1f2933}
header{background:#1f2933;color:#fff;padding:1rem 2rem}
main{display:grid;grid-template-columns:minmax(320px,1fr) 2fr;gap:2rem;padding:2rem}
.card{background:#fff;border-radius:8px;padding:1.5rem;box-shadow:0 1px 3px rgba(0,0,0,.1)}
.field{margin-bottom:1rem}
.field label{display:block;font-weight:600;margin-bottom:.25rem}
.field input,.field select,.field textarea{width:100%;padding:.5rem;border:1px solid #cbd2d9;border-radius:4px;box-sizing:border-box}
.field.invalid input,.field.invalid select{border-color:#d64545}
.error{color:#d64545;font-size:.875rem;margin:.25rem 0 0}
.flash{background:#e3f9e5;border:1px solid #57ae5b;padding:.75rem;border-radius:4px;margin-bottom:1rem}
.alert{background:#ffeeee;border:1px solid #d64545;padding:.75rem;border-radius:4px;margin-bottom:1rem}
table{width:100%;border-collapse:collapse}
th,td{text-align:left;padding:.5rem;border-bottom:1px solid #e4e7eb;vertical-align:top}
tr.editing{background:#fffbea}
.inline{display:inline}
.muted{color:#7b8794}
`

// Page renders the full form page.
func Page(p PageParams) templ.Component {
	return component(func(h *writer) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>Entry Form</title><style>`)
		h.raw(stylesheet)
		h.raw(`</style><script src="/static/form.js" defer></script></head><body>`)
		h.raw(`<header><h1>Entry Form</h1></header>`)
		h.render(Workspace(p))
		h.raw(`</body></html>`)
	})
}

// Workspace renders the swappable body: notices, form, summary and entry list.
func Workspace(p PageParams) templ.Component {
	return component(func(h *writer) {
		h.raw(`<main id="workspace"><div>`)
		if p.Flash != "" {
			h.raw(`<div class="flash" role="status">`)
			h.text(p.Flash)
			h.raw(`</div>`)
		}
		if p.Alert != nil {
			h.render(ErrorAlert(p.Alert.Message, p.Alert.Action, p.Alert.Code))
		}
		h.render(FormPartial(p.Form, p.Departments, p.States))
		h.raw(`</div><div>`)
		h.render(SummaryPanel(p.Summary))
		h.render(EntryList(p.Entries, p.Form.EditingID))
		h.raw(`</div></main>`)
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<div class="alert" role="alert"><strong>`)
		h.text(message)
		h.raw(`</strong>`)
		if action != "" {
			h.raw(` `)
			h.text(action)
		}
		if code != "" {
			h.raw(` <span class="muted">(`)
			h.text(code)
			h.raw(`)</span>`)
		}
		h.raw(`</div>`)
	})
}
