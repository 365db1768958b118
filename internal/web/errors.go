package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (HTMX, JSON, or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via form.MapError to get user-friendly message
//  4. Technical error + context is logged with request and session id
//  5. User message is rendered in appropriate format for the client

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/formdesk/internal/form"
	"github.com/JonMunkholm/formdesk/internal/logging"
	"github.com/JonMunkholm/formdesk/internal/web/templates"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message"`
	Action  string           `json:"action,omitempty"`
	Code    string           `json:"code"`
	Fields  []FieldErrorJSON `json:"fields,omitempty"`
}

// FieldErrorJSON is one field failure in an API response.
type FieldErrorJSON struct {
	Field   string `json:"field"`
	Cause   string `json:"cause"`
	Message string `json:"message"`
}

func fieldErrorsJSON(errs form.Errors) []FieldErrorJSON {
	out := make([]FieldErrorJSON, len(errs))
	for i, fe := range errs {
		out[i] = FieldErrorJSON{
			Field:   fe.Field.Key(),
			Cause:   string(fe.Cause),
			Message: fe.Message,
		}
	}
	return out
}

// statusFor picks the HTTP status for an error from the form package.
func statusFor(err error) int {
	if _, ok := form.AsErrors(err); ok {
		return http.StatusUnprocessableEntity
	}
	switch {
	case errors.Is(err, form.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, form.ErrSessionLimit):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (HTMX, JSON, or HTML).
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := form.MapError(err)

	log := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		log.Error("request error", attrs...)
	} else {
		log.Warn("request error", attrs...)
	}

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, err, userMsg, statusCode)
	default:
		respondErrorHTML(w, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response. Validation failures carry
// the per-field errors.
func respondErrorJSON(w http.ResponseWriter, err error, msg form.UserMessage, statusCode int) {
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	if errs, ok := form.AsErrors(err); ok {
		resp.Fields = fieldErrorsJSON(errs)
	}
	writeJSON(w, statusCode, resp)
}

// respondErrorHTML writes a plain text error response.
func respondErrorHTML(w http.ResponseWriter, msg form.UserMessage, statusCode int) {
	http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
}

// renderErrorPartial renders an HTMX-compatible error fragment.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg form.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := templates.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error alert", "error", err)
	}
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	// API routes default to JSON
	return strings.HasPrefix(r.URL.Path, "/api/")
}
