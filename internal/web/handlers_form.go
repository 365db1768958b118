package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/formdesk/internal/form"
	"github.com/JonMunkholm/formdesk/internal/logging"
	"github.com/JonMunkholm/formdesk/internal/web/templates"
)

// maxFormBytes bounds a form post; the whole entry is a few hundred bytes.
const maxFormBytes = 64 << 10

// parseValues reads the form fields of a POST body. Missing fields are empty.
func parseValues(w http.ResponseWriter, r *http.Request) (form.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return form.Values{}, errMalformed(err)
	}
	var v form.Values
	for _, f := range form.Fields {
		v.Set(f, r.PostForm.Get(f.Key()))
	}
	return v, nil
}

// pageParams snapshots the session for rendering and consumes its notices.
func (s *Server) pageParams(ps *pageSession) templates.PageParams {
	fs := ps.form
	flash, alert := ps.takeFlash()

	p := templates.PageParams{
		Form: templates.FormView{
			Values:    fs.Values(),
			Errors:    fs.VisibleErrors(),
			State:     fs.State(),
			EditingID: fs.EditingID(),
		},
		Entries:     fs.Store().Entries(),
		Summary:     fs.Summary(s.cfg.Form.SummaryTopN),
		Departments: s.options.Departments,
		States:      s.options.States,
		Flash:       flash,
	}
	if alert != nil {
		p.Alert = &templates.Notice{Message: alert.Message, Action: alert.Action, Code: alert.Code}
	}
	return p
}

// render writes the full page, or only the workspace for HTMX requests.
func (s *Server) render(w http.ResponseWriter, r *http.Request, ps *pageSession, status int) {
	p := s.pageParams(ps)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	var err error
	if isHTMX(r) {
		err = templates.Workspace(p).Render(r.Context(), w)
	} else {
		err = templates.Page(p).Render(r.Context(), w)
	}
	if err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// done finishes a mutation: HTMX clients get the fresh workspace, browsers
// are redirected so a reload does not repeat the post.
func (s *Server) done(w http.ResponseWriter, r *http.Request, ps *pageSession) {
	if isHTMX(r) {
		s.render(w, r, ps, http.StatusOK)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fail shows err as an alert above the form on the next render.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, ps *pageSession, err error) {
	msg := form.MapError(err)
	ps.alert = &msg

	level := slog.LevelWarn
	if !form.IsUserFacing(err) {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "form action failed",
		"path", r.URL.Path,
		"error", err,
		"code", msg.Code,
	)
	s.done(w, r, ps)
}

// handlePage renders the form page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, sessionFrom(r.Context()), http.StatusOK)
}

// handleFormUpdate records the working values as the user types. Fields named
// in "touched" have been left by the user and start showing their errors.
func (s *Server) handleFormUpdate(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())

	values, err := parseValues(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	ps.form.SetValues(values)
	for _, key := range r.PostForm["touched"] {
		if f, ok := form.ParseField(key); ok {
			ps.form.Touch(f)
		}
	}

	s.done(w, r, ps)
}

// handleSubmit commits the working form: a new entry when idle, an update
// when editing. Invalid values re-render the form with every error shown.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	log := logging.FromContext(r.Context())

	values, err := parseValues(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	ps.form.SetValues(values)

	res, err := ps.form.Submit()
	if errs, ok := form.AsErrors(err); ok {
		for _, fe := range errs {
			s.metrics.SubmitRejected.WithLabelValues(fe.Field.Key()).Inc()
		}
		log.Debug("submit rejected", "errors", len(errs))
		s.render(w, r, ps, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		s.fail(w, r, ps, err)
		return
	}

	if res.Created {
		s.metrics.EntriesCreated.Inc()
		ps.flash = "Entry added."
		log.Info("entry created", "entry_id", res.Entry.ID)
	} else {
		s.metrics.EntriesUpdated.Inc()
		ps.flash = "Entry updated."
		log.Info("entry updated", "entry_id", res.Entry.ID)
	}
	s.done(w, r, ps)
}

// handleCancel abandons the current edit.
func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	ps.form.Cancel()
	s.done(w, r, ps)
}

// handleEdit loads an entry into the form.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := ps.form.StartEdit(id); err != nil {
		s.fail(w, r, ps, err)
		return
	}
	s.done(w, r, ps)
}

// handleDelete removes an entry. Deleting the entry under edit resets the form.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := ps.form.Delete(id); err != nil {
		s.fail(w, r, ps, err)
		return
	}
	s.metrics.EntriesDeleted.Inc()
	ps.flash = "Entry deleted."
	logging.FromContext(r.Context()).Info("entry deleted", "entry_id", id)
	s.done(w, r, ps)
}
