package form

// Session is the form state machine for one page session.
//
// States:
//
//	Idle        --Submit(valid)-->   Idle         creates an entry
//	Idle        --StartEdit(id)-->   Editing(id)  loads the entry into the form
//	Editing(id) --Submit(valid)-->   Idle         updates the entry
//	Editing(id) --Cancel-->          Idle         discards working values
//	Editing(id) --Delete(id)-->      Idle         deletes the entry
//
// An invalid submit keeps the current state and leaves the store untouched.
// Session is not safe for concurrent use.
type Session struct {
	store     *Store
	values    Values
	editingID string
	touched   map[Field]bool
	attempted bool
}

// NewSession creates an idle session over store.
func NewSession(store *Store) *Session {
	return &Session{
		store:   store,
		touched: make(map[Field]bool),
	}
}

// Store returns the entry store backing the session.
func (s *Session) Store() *Store { return s.store }

// State returns the current edit state.
func (s *Session) State() State {
	if s.editingID != "" {
		return StateEditing
	}
	return StateIdle
}

// EditingID returns the id of the entry being edited, or "" when idle.
func (s *Session) EditingID() string { return s.editingID }

// Values returns the working form values.
func (s *Session) Values() Values { return s.values }

// SetValue records a keystroke for field.
func (s *Session) SetValue(f Field, value string) {
	s.values.Set(f, value)
}

// SetValues replaces the whole working form.
func (s *Session) SetValues(v Values) {
	s.values = v
}

// Touch marks field as interacted with (blurred), so its error becomes visible.
func (s *Session) Touch(f Field) {
	s.touched[f] = true
}

// SubmitAttempted reports whether a submit was tried since the form was last reset.
func (s *Session) SubmitAttempted() bool { return s.attempted }

// Errors recomputes validation errors for the working values.
func (s *Session) Errors() Errors { return Validate(s.values) }

// Valid reports aggregate validity of the working values.
func (s *Session) Valid() bool { return s.Errors().Valid() }

// VisibleErrors returns the errors the user should see: those of touched
// fields, or all of them once a submit has been attempted.
func (s *Session) VisibleErrors() Errors {
	errs := s.Errors()
	if s.attempted {
		return errs
	}
	var visible Errors
	for _, fe := range errs {
		if s.touched[fe.Field] {
			visible = append(visible, fe)
		}
	}
	return visible
}

// Submit commits the working values: a new entry when idle, an update when
// editing. On success the form is reset and the session returns to idle.
// On invalid values the session is unchanged apart from marking the attempt,
// and the returned error is Errors.
func (s *Session) Submit() (SubmitResult, error) {
	s.attempted = true

	if errs := s.Errors(); !errs.Valid() {
		return SubmitResult{}, errs
	}

	if s.editingID == "" {
		e, err := s.store.Add(s.values)
		if err != nil {
			return SubmitResult{}, err
		}
		s.reset()
		return SubmitResult{Entry: e, Created: true}, nil
	}

	e, err := s.store.Update(s.editingID, s.values)
	if err != nil {
		// The target vanished: drop the edit target but keep the values so
		// the next submit creates a new entry.
		s.editingID = ""
		return SubmitResult{}, err
	}
	s.reset()
	return SubmitResult{Entry: e}, nil
}

// StartEdit loads the entry into the working form and switches to Editing(id).
// Any uncommitted working values are discarded.
func (s *Session) StartEdit(id string) error {
	e, ok := s.store.Get(id)
	if !ok {
		return ErrEntryNotFound
	}
	s.reset()
	s.values = e.Values
	s.editingID = id
	return nil
}

// Cancel discards the working values and returns to idle.
func (s *Session) Cancel() {
	s.reset()
}

// Delete removes the entry. Deleting the entry under edit cancels the edit session.
func (s *Session) Delete(id string) error {
	if !s.store.Remove(id) {
		return ErrEntryNotFound
	}
	if id == s.editingID {
		s.reset()
	}
	return nil
}

// Summary returns the list summary with the top n departments.
// n <= 0 selects DefaultTopDepartments.
func (s *Session) Summary(n int) Summary {
	if n <= 0 {
		n = DefaultTopDepartments
	}
	return s.store.Summary(n)
}

func (s *Session) reset() {
	s.values = Values{}
	s.editingID = ""
	s.attempted = false
	clear(s.touched)
}
