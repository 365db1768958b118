package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/formdesk/internal/form"
	"github.com/JonMunkholm/formdesk/internal/logging"
)

func errMalformed(err error) error {
	return fmt.Errorf("%w: %v", form.ErrMalformedRequest, err)
}

// decodeValues reads a JSON values object. Unknown keys are rejected.
func decodeValues(w http.ResponseWriter, r *http.Request) (form.Values, error) {
	var v form.Values
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return form.Values{}, errMalformed(err)
	}
	return v, nil
}

// formResponse is the JSON view of the working form.
type formResponse struct {
	State           form.State       `json:"state"`
	EditingID       string           `json:"editingId,omitempty"`
	Values          form.Values      `json:"values"`
	Errors          []FieldErrorJSON `json:"errors"`
	Valid           bool             `json:"valid"`
	SubmitAttempted bool             `json:"submitAttempted"`
}

type entriesResponse struct {
	Entries []form.Entry `json:"entries"`
	Total   int          `json:"total"`
}

type validateResponse struct {
	Valid  bool             `json:"valid"`
	Errors []FieldErrorJSON `json:"errors"`
}

// handleAPIForm returns the working form with its visible errors.
func (s *Server) handleAPIForm(w http.ResponseWriter, r *http.Request) {
	fs := sessionFrom(r.Context()).form
	writeJSON(w, http.StatusOK, formResponse{
		State:           fs.State(),
		EditingID:       fs.EditingID(),
		Values:          fs.Values(),
		Errors:          fieldErrorsJSON(fs.VisibleErrors()),
		Valid:           fs.Valid(),
		SubmitAttempted: fs.SubmitAttempted(),
	})
}

// handleAPIListEntries returns all entries, newest first.
func (s *Server) handleAPIListEntries(w http.ResponseWriter, r *http.Request) {
	entries := sessionFrom(r.Context()).form.Store().Entries()
	if entries == nil {
		entries = []form.Entry{}
	}
	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries, Total: len(entries)})
}

// handleAPICreateEntry adds an entry without touching the working form.
func (s *Server) handleAPICreateEntry(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())

	values, err := decodeValues(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	e, err := ps.form.Store().Add(values)
	if err != nil {
		s.countRejected(err)
		respondError(w, r, err, statusFor(err))
		return
	}

	s.metrics.EntriesCreated.Inc()
	logging.FromContext(r.Context()).Info("entry created", "entry_id", e.ID, "via", "api")
	writeJSON(w, http.StatusCreated, e)
}

// handleAPIUpdateEntry replaces the values of an entry.
func (s *Server) handleAPIUpdateEntry(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	values, err := decodeValues(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}

	e, err := ps.form.Store().Update(id, values)
	if err != nil {
		s.countRejected(err)
		respondError(w, r, err, statusFor(err))
		return
	}

	s.metrics.EntriesUpdated.Inc()
	logging.FromContext(r.Context()).Info("entry updated", "entry_id", e.ID, "via", "api")
	writeJSON(w, http.StatusOK, e)
}

// handleAPIDeleteEntry removes an entry. An open edit of it is cancelled.
func (s *Server) handleAPIDeleteEntry(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := ps.form.Delete(id); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	s.metrics.EntriesDeleted.Inc()
	logging.FromContext(r.Context()).Info("entry deleted", "entry_id", id, "via", "api")
	w.WriteHeader(http.StatusNoContent)
}

// handleAPISummary returns the entry count and the top departments.
func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	sum := sessionFrom(r.Context()).form.Summary(s.cfg.Form.SummaryTopN)
	if sum.TopDepartments == nil {
		sum.TopDepartments = []form.DepartmentCount{}
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleAPIOptions returns the department and state lists.
func (s *Server) handleAPIOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.options)
}

// handleAPIValidate validates a values object without storing it.
func (s *Server) handleAPIValidate(w http.ResponseWriter, r *http.Request) {
	values, err := decodeValues(w, r)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest)
		return
	}
	errs := form.Validate(values)
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:  errs.Valid(),
		Errors: fieldErrorsJSON(errs),
	})
}

func (s *Server) countRejected(err error) {
	if errs, ok := form.AsErrors(err); ok {
		for _, fe := range errs {
			s.metrics.SubmitRejected.WithLabelValues(fe.Field.Key()).Inc()
		}
	}
}
