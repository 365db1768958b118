// Package form provides the business logic for the entry form.
//
// This package is the heart of formdesk, containing all domain logic
// independent of any UI or transport layer. It is driven by the web handlers
// and by the terminal frontend without modification.
//
// # Architecture
//
// The package is organized around three cooperating pieces:
//
//   - Validators: pure functions mapping each field value to an optional
//     [FieldError]. See [ValidateField] and [Validate].
//   - Store: an ordered, newest-first collection of [Entry] records with
//     create, update and delete. See [Store].
//   - Exporter: serializes entries into CSV text. See [WriteCSV].
//
// A [Session] ties them together as a small state machine: it holds the
// working [Values], tracks whether an existing entry is being edited, and
// decides which validation errors the user should currently see.
//
//	s := form.NewSession(form.NewStore())
//	s.SetValue(form.FieldFullName, "Asha Rao")
//	// ... remaining fields ...
//	res, err := s.Submit()
//	if errs, ok := form.AsErrors(err); ok {
//	    // show errs field by field
//	}
//
// # Error Handling
//
// Validation failures are returned as [Errors], which implements error.
// Other failures are sentinel errors ([ErrEntryNotFound], [ErrNothingToExport])
// checked with errors.Is. [MapError] turns any of them into a [UserMessage]
// with a support code:
//
//   - VAL001-VAL005: Validation errors (required fields, formats)
//   - ENT001: Entry errors
//   - EXP001: Export errors
//   - SES001-SES002: Page session errors
//
// # Concurrency
//
// A Session and its Store are not safe for concurrent use. Every operation
// runs to completion in response to a single user action; callers that serve
// several goroutines (the web frontend) serialize access per session.
package form
