// Package templates renders the HTML views of the entry form.
//
// Components follow the templ.Component contract so handlers render them the
// same way whether a full page or an HTMX partial is requested.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/formdesk/internal/form"
)

// Notice is a one-shot banner above the form.
type Notice struct {
	Message string
	Action  string
	Code    string
}

// FormView is the working form as the user should see it.
type FormView struct {
	Values    form.Values
	Errors    form.Errors // Visible errors only
	State     form.State
	EditingID string
}

// PageParams carries everything the form page shows.
type PageParams struct {
	Form        FormView
	Entries     []form.Entry
	Summary     form.Summary
	Departments []string
	States      []string
	Flash       string
	Alert       *Notice
}

// writer accumulates the first write error so markup can be emitted linearly.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *writer) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *writer) attr(name, value string) {
	h.raw(" ")
	h.raw(name)
	h.raw(`="`)
	h.text(value)
	h.raw(`"`)
}

func (h *writer) render(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}
