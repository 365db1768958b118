package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/formdesk/internal/form"
	"github.com/JonMunkholm/formdesk/internal/logging"
)

// handleExport downloads the session's entries as CSV, newest first.
// An empty store answers 204 with no body rather than an empty file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r.Context())
	log := logging.FromContext(r.Context())

	entries := ps.form.Store().Entries()
	data, err := form.ExportCSV(entries)
	if errors.Is(err, form.ErrNothingToExport) {
		s.metrics.Exports.WithLabelValues("empty").Inc()
		log.Debug("export skipped, no entries")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		s.metrics.Exports.WithLabelValues("error").Inc()
		respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	filename := form.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		// Headers are sent; nothing more to tell the client.
		log.Warn("export write failed", "error", err)
		return
	}

	s.metrics.Exports.WithLabelValues("ok").Inc()
	log.Info("entries exported", "rows", len(entries), "filename", filename)
}
