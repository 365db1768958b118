package form

// errors.go defines the sentinel errors of the form package and the
// user-facing error catalogue. Users can quote a code to support staff.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Required field: A required field is empty
//	         Action: Fill in every field marked as required
//	VAL002 - Invalid email: Email address is not in name@domain.tld form
//	         Action: Check the email address for typos
//	VAL003 - Invalid phone: Phone number does not have 10 digits
//	         Action: Enter the number without the country code
//	VAL004 - Invalid PIN code: PIN code does not have 6 digits
//	         Action: Enter the 6-digit postal PIN code
//	VAL005 - Several fields: More than one field needs attention
//	         Action: Review the highlighted fields
//
// # Entry Errors (ENT001-ENT099)
//
//	ENT001 - Entry not found: The entry no longer exists
//	         Action: Refresh the list; it may have been deleted
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Nothing to export: There are no entries yet
//	         Action: Add at least one entry before exporting
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session limit: Too many open form sessions
//	         Action: Please try again in a few minutes
//	SES002 - Request cancelled or timed out
//	         Action: Please try again
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Malformed request: The request body could not be read
//	         Action: Send form fields or a JSON object with the field keys
//
// # Other
//
//	RATE001 - Rate limited: Too many requests
//	ERR000  - Unknown error: An unexpected error occurred
//
// Sentinel errors are matched with errors.Is first; the remaining patterns
// are matched case-insensitively against the error text. The first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEntryNotFound is returned when an id does not match any entry.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrNothingToExport is returned when exporting an empty store.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrSessionLimit is returned when no new page session can be opened.
	ErrSessionLimit = errors.New("session limit reached")

	// ErrMalformedRequest wraps decoding failures of a request body.
	ErrMalformedRequest = errors.New("malformed request")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorMapping struct {
	target  error  // Matched with errors.Is when set
	pattern string // Otherwise matched against the lowercased error text
	msg     UserMessage
}

var errorMappings = []errorMapping{
	{
		target: ErrEntryNotFound,
		msg: UserMessage{
			Message: "The entry no longer exists",
			Action:  "Refresh the list; it may have been deleted",
			Code:    "ENT001",
		},
	},
	{
		target: ErrNothingToExport,
		msg: UserMessage{
			Message: "There are no entries to export",
			Action:  "Add at least one entry before exporting",
			Code:    "EXP001",
		},
	},
	{
		target: ErrSessionLimit,
		msg: UserMessage{
			Message: "Too many open form sessions",
			Action:  "Please try again in a few minutes",
			Code:    "SES001",
		},
	},
	{
		target: ErrMalformedRequest,
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send form fields or a JSON object with the field keys",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "SES002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "SES002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var validationMessages = map[string]UserMessage{
	"VAL001": {
		Message: "A required field is empty",
		Action:  "Fill in every field marked as required",
		Code:    "VAL001",
	},
	"VAL002": {
		Message: "Email address is not valid",
		Action:  "Check the email address for typos",
		Code:    "VAL002",
	},
	"VAL003": {
		Message: "Phone number must have 10 digits",
		Action:  "Enter the number without the country code",
		Code:    "VAL003",
	},
	"VAL004": {
		Message: "PIN code must have 6 digits",
		Action:  "Enter the 6-digit postal PIN code",
		Code:    "VAL004",
	},
	"VAL005": {
		Message: "Some fields need attention",
		Action:  "Review the highlighted fields",
		Code:    "VAL005",
	},
}

// defaultMessage is returned when nothing matches (ERR000).
// Check application logs for the original error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errs, ok := AsErrors(err); ok {
		return validationMessages[validationCode(errs)]
	}

	for _, m := range errorMappings {
		if m.target != nil && errors.Is(err, m.target) {
			return m.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, m := range errorMappings {
		if m.pattern != "" && strings.Contains(errStr, m.pattern) {
			return m.msg
		}
	}

	return defaultMessage
}

// validationCode picks the catalogue code for a set of field errors.
func validationCode(errs Errors) string {
	if len(errs) != 1 {
		return "VAL005"
	}
	fe := errs[0]
	if fe.Cause == CauseRequired {
		return "VAL001"
	}
	switch fe.Field {
	case FieldEmail:
		return "VAL002"
	case FieldPhone:
		return "VAL003"
	case FieldPinCode:
		return "VAL004"
	}
	return "VAL005"
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific catalogue entry
// rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
