package form

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store with sequential ids and a clock that ticks one
// minute per entry.
func newTestStore() *Store {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return NewStore(
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time {
			return base.Add(time.Duration(n) * time.Minute)
		}),
	)
}

func valuesIn(dept string) Values {
	v := validValues()
	v.Department = dept
	return v
}

func TestStore_AddPrependsNewestFirst(t *testing.T) {
	s := newTestStore()

	first, err := s.Add(valuesIn("Sales"))
	require.NoError(t, err)
	second, err := s.Add(valuesIn("HR"))
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStore_AddTrimsValues(t *testing.T) {
	s := newTestStore()
	v := validValues()
	v.FullName = "  Asha Rao "

	e, err := s.Add(v)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", e.FullName)
}

func TestStore_AddRejectsInvalid(t *testing.T) {
	s := newTestStore()
	v := validValues()
	v.City = ""

	_, err := s.Add(v)
	errs, ok := AsErrors(err)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, FieldCity, errs[0].Field)
	assert.Zero(t, s.Len())
}

func TestStore_AddDefaultIDsAreUnique(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		e, err := s.Add(validValues())
		require.NoError(t, err)
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestStore_UpdateKeepsIdentityAndPosition(t *testing.T) {
	s := newTestStore()
	_, err := s.Add(valuesIn("Sales"))
	require.NoError(t, err)
	target, err := s.Add(valuesIn("HR"))
	require.NoError(t, err)
	_, err = s.Add(valuesIn("Finance"))
	require.NoError(t, err)

	before := s.Entries()

	changed := target.Values
	changed.City = "Mumbai"
	updated, err := s.Update(target.ID, changed)
	require.NoError(t, err)

	assert.Equal(t, target.ID, updated.ID)
	assert.Equal(t, target.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Mumbai", updated.City)

	after := s.Entries()
	require.Len(t, after, 3)
	assert.Equal(t, target.ID, after[1].ID)

	// Only the city of the edited entry differs.
	want := before
	want[1].City = "Mumbai"
	if diff := cmp.Diff(want, after); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateUnknownID(t *testing.T) {
	s := newTestStore()
	_, err := s.Add(validValues())
	require.NoError(t, err)
	before := s.Entries()

	_, err = s.Update("missing", validValues())
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Equal(t, before, s.Entries())
}

func TestStore_UpdateRejectsInvalid(t *testing.T) {
	s := newTestStore()
	e, err := s.Add(validValues())
	require.NoError(t, err)

	bad := e.Values
	bad.Phone = "123"
	_, err = s.Update(e.ID, bad)
	_, ok := AsErrors(err)
	assert.True(t, ok)

	got, found := s.Get(e.ID)
	require.True(t, found)
	assert.Equal(t, e, got)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore()
	a, _ := s.Add(valuesIn("Sales"))
	b, _ := s.Add(valuesIn("HR"))
	c, _ := s.Add(valuesIn("Finance"))

	assert.True(t, s.Remove(b.ID))
	assert.False(t, s.Remove(b.ID))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, c.ID, entries[0].ID)
	assert.Equal(t, a.ID, entries[1].ID)

	// The index still resolves the survivors.
	_, ok := s.Get(a.ID)
	assert.True(t, ok)
	_, ok = s.Get(b.ID)
	assert.False(t, ok)
}

func TestStore_EntriesReturnsCopy(t *testing.T) {
	s := newTestStore()
	_, _ = s.Add(validValues())

	entries := s.Entries()
	entries[0].FullName = "changed"

	assert.Equal(t, "Asha Rao", s.Entries()[0].FullName)
}
