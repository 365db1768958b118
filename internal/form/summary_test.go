package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entriesIn(depts ...string) []Entry {
	out := make([]Entry, len(depts))
	for i, d := range depts {
		out[i] = Entry{ID: d + string(rune('a'+i)), Values: Values{Department: d}}
	}
	return out
}

func TestTopDepartments(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		n       int
		want    []DepartmentCount
	}{
		{
			name:    "empty",
			entries: nil,
			n:       3,
			want:    nil,
		},
		{
			name:    "descending by count",
			entries: entriesIn("HR", "Sales", "Sales", "IT", "Sales", "IT"),
			n:       3,
			want: []DepartmentCount{
				{Department: "Sales", Count: 3},
				{Department: "IT", Count: 2},
				{Department: "HR", Count: 1},
			},
		},
		{
			name:    "ties keep first encountered order",
			entries: entriesIn("Finance", "HR", "IT", "HR", "Finance", "IT"),
			n:       3,
			want: []DepartmentCount{
				{Department: "Finance", Count: 2},
				{Department: "HR", Count: 2},
				{Department: "IT", Count: 2},
			},
		},
		{
			name:    "truncated to n",
			entries: entriesIn("A", "B", "C", "D", "D"),
			n:       3,
			want: []DepartmentCount{
				{Department: "D", Count: 2},
				{Department: "A", Count: 1},
				{Department: "B", Count: 1},
			},
		},
		{
			name:    "non-positive n",
			entries: entriesIn("A"),
			n:       0,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopDepartments(tt.entries, tt.n)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.n, 0))
		})
	}
}

func TestStore_Summary(t *testing.T) {
	s := newTestStore()
	for _, d := range []string{"Sales", "HR", "Sales", "IT", "Ops"} {
		_, err := s.Add(valuesIn(d))
		assert.NoError(t, err)
	}

	sum := s.Summary(DefaultTopDepartments)
	assert.Equal(t, 5, sum.Total)
	assert.Len(t, sum.TopDepartments, 3)
	assert.Equal(t, DepartmentCount{Department: "Sales", Count: 2}, sum.TopDepartments[0])
	for i := 1; i < len(sum.TopDepartments); i++ {
		assert.GreaterOrEqual(t, sum.TopDepartments[i-1].Count, sum.TopDepartments[i].Count)
	}
}
