package form

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTopDepartments is the size of the top-departments summary.
const DefaultTopDepartments = 3

// Store is an ordered, newest-first collection of entries.
// It is not safe for concurrent use.
type Store struct {
	entries []Entry
	index   map[string]int // id -> position in entries

	now   func() time.Time
	newID func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the entry id generator.
// Generated ids must be unique; a collision panics.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		index: make(map[string]int),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates values and prepends a new entry.
// Returns Errors and leaves the store unchanged if the values are invalid.
func (s *Store) Add(values Values) (Entry, error) {
	if errs := Validate(values); !errs.Valid() {
		return Entry{}, errs
	}

	id := s.newID()
	if _, exists := s.index[id]; exists {
		panic("form: duplicate entry id " + id)
	}

	e := Entry{
		ID:        id,
		CreatedAt: s.now(),
		Values:    values.Trimmed(),
	}

	s.entries = append([]Entry{e}, s.entries...)
	s.reindex()
	return e, nil
}

// Update replaces every field of the entry with the given id.
// ID, CreatedAt and position are kept.
func (s *Store) Update(id string, values Values) (Entry, error) {
	pos, ok := s.index[id]
	if !ok {
		return Entry{}, ErrEntryNotFound
	}
	if errs := Validate(values); !errs.Valid() {
		return Entry{}, errs
	}

	s.entries[pos].Values = values.Trimmed()
	return s.entries[pos], nil
}

// Remove deletes the entry with the given id.
// Returns false if no entry matched.
func (s *Store) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.entries = append(s.entries[:pos], s.entries[pos+1:]...)
	s.reindex()
	return true
}

// Get returns the entry with the given id.
func (s *Store) Get(id string) (Entry, bool) {
	pos, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[pos], true
}

// Entries returns a copy of all entries in store order (newest first).
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Summary computes the derived list summary with the top n departments.
func (s *Store) Summary(n int) Summary {
	return Summary{
		Total:          len(s.entries),
		TopDepartments: TopDepartments(s.entries, n),
	}
}

func (s *Store) reindex() {
	clear(s.index)
	for i, e := range s.entries {
		s.index[e.ID] = i
	}
}
