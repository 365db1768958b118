package form

// validation.go provides the field-level validators for the entry form.
//
// Every field maps to a validator tag string. Tags are evaluated in order and
// the first failing tag decides the error, so "filled" always wins over the
// format tags:
//
//	fullName, department, city, state  filled
//	email                              filled,email_shape
//	phone                              filled,digits=10
//	pinCode                            filled,digits=6
//	notes                              (always valid)
//
// Validation is pure: the same value always yields the same result.

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Cause classifies why a field failed validation.
type Cause string

const (
	CauseRequired Cause = "required"
	CauseFormat   Cause = "format"
)

// FieldError is a validation failure for exactly one field.
type FieldError struct {
	Field   Field
	Cause   Cause
	Message string // Human-readable error message
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field.Key(), e.Message)
}

// Errors holds the validation failures of a set of values, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Valid reports aggregate validity: no field produced an error.
func (e Errors) Valid() bool { return len(e) == 0 }

// For returns the error for a field, or nil.
func (e Errors) For(f Field) *FieldError {
	for i := range e {
		if e[i].Field == f {
			return &e[i]
		}
	}
	return nil
}

// AsErrors extracts validation errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// emailShape matches a basic local@domain.tld shape.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// fieldRules maps each validated field to its validator tags.
var fieldRules = map[Field]string{
	FieldFullName:   "filled",
	FieldEmail:      "filled,email_shape",
	FieldPhone:      "filled,digits=10",
	FieldDepartment: "filled",
	FieldCity:       "filled",
	FieldState:      "filled",
	FieldPinCode:    "filled,digits=6",
}

// requiredMessages and formatMessages hold the user-facing text per field.
var requiredMessages = map[Field]string{
	FieldFullName:   "Full name is required",
	FieldEmail:      "Email is required",
	FieldPhone:      "Phone number is required",
	FieldDepartment: "Please select a department",
	FieldCity:       "City is required",
	FieldState:      "Please select a state",
	FieldPinCode:    "PIN code is required",
}

var formatMessages = map[Field]string{
	FieldEmail:   "Enter a valid email address",
	FieldPhone:   "Enter a valid 10-digit phone number",
	FieldPinCode: "Enter a valid 6-digit PIN code",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		mustRegister(v, "filled", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
			return emailShape.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
			want, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(DigitsOnly(fl.Field().String())) == want
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register validation %q: %v", tag, err))
	}
}

// DigitsOnly strips every non-digit character from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateField validates a single field value.
// Returns nil if the value is valid.
func ValidateField(f Field, value string) *FieldError {
	rule, ok := fieldRules[f]
	if !ok {
		return nil
	}

	err := getValidator().Var(value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		// Only reachable on a malformed rule table.
		panic(fmt.Sprintf("form: validate %s: %v", f.Key(), err))
	}

	if verrs[0].Tag() == "filled" {
		return &FieldError{Field: f, Cause: CauseRequired, Message: requiredMessages[f]}
	}
	return &FieldError{Field: f, Cause: CauseFormat, Message: formatMessages[f]}
}

// Validate validates every field and returns the failures in field order.
// An empty result means the values may be committed.
func Validate(v Values) Errors {
	var errs Errors
	for _, f := range Fields {
		if fe := ValidateField(f, v.Get(f)); fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// Valid reports aggregate validity of v.
func Valid(v Values) bool {
	return Validate(v).Valid()
}
