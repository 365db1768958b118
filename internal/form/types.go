package form

import (
	"strings"
	"time"
)

// Field identifies one input of the entry form.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldPhone
	FieldDepartment
	FieldCity
	FieldState
	FieldPinCode
	FieldNotes
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldDepartment,
	FieldCity,
	FieldState,
	FieldPinCode,
	FieldNotes,
}

type fieldInfo struct {
	key   string // Stable identifier used in form posts and JSON
	label string // Column/display label
}

var fieldInfos = [...]fieldInfo{
	FieldFullName:   {key: "fullName", label: "Full Name"},
	FieldEmail:      {key: "email", label: "Email"},
	FieldPhone:      {key: "phone", label: "Phone"},
	FieldDepartment: {key: "department", label: "Department"},
	FieldCity:       {key: "city", label: "City"},
	FieldState:      {key: "state", label: "State"},
	FieldPinCode:    {key: "pinCode", label: "PIN Code"},
	FieldNotes:      {key: "notes", label: "Notes"},
}

// Key returns the stable identifier of the field ("fullName", "pinCode", ...).
func (f Field) Key() string {
	if f < 0 || int(f) >= len(fieldInfos) {
		return ""
	}
	return fieldInfos[f].key
}

// Label returns the human-readable column label of the field.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldInfos) {
		return ""
	}
	return fieldInfos[f].label
}

func (f Field) String() string { return f.Key() }

// ParseField looks a field up by its key. Matching is case-insensitive.
func ParseField(key string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(f.Key(), key) {
			return f, true
		}
	}
	return 0, false
}

// Values is the working record behind the form. The zero value is an empty form.
type Values struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	City       string `json:"city"`
	State      string `json:"state"`
	PinCode    string `json:"pinCode"`
	Notes      string `json:"notes"`
}

// Get returns the value of a single field.
func (v Values) Get(f Field) string {
	switch f {
	case FieldFullName:
		return v.FullName
	case FieldEmail:
		return v.Email
	case FieldPhone:
		return v.Phone
	case FieldDepartment:
		return v.Department
	case FieldCity:
		return v.City
	case FieldState:
		return v.State
	case FieldPinCode:
		return v.PinCode
	case FieldNotes:
		return v.Notes
	}
	return ""
}

// Set assigns a single field.
func (v *Values) Set(f Field, value string) {
	switch f {
	case FieldFullName:
		v.FullName = value
	case FieldEmail:
		v.Email = value
	case FieldPhone:
		v.Phone = value
	case FieldDepartment:
		v.Department = value
	case FieldCity:
		v.City = value
	case FieldState:
		v.State = value
	case FieldPinCode:
		v.PinCode = value
	case FieldNotes:
		v.Notes = value
	}
}

// Trimmed returns a copy with leading and trailing whitespace removed from every field.
func (v Values) Trimmed() Values {
	var out Values
	for _, f := range Fields {
		out.Set(f, strings.TrimSpace(v.Get(f)))
	}
	return out
}

// Entry is a validated record held by a Store.
// ID and CreatedAt never change after creation; Values is replaced wholesale on edit.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Values
}

// DepartmentCount is one row of the top-departments summary.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// Summary is derived from the store after every mutation.
type Summary struct {
	Total          int               `json:"total"`
	TopDepartments []DepartmentCount `json:"topDepartments"`
}

// State is the edit state of a Session.
type State string

const (
	StateIdle    State = "idle"
	StateEditing State = "editing"
)

// SubmitResult describes a successful submit.
type SubmitResult struct {
	Entry   Entry
	Created bool // False when an existing entry was updated
}
