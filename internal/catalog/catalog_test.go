package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.NotEmpty(t, c.Departments)
	assert.NotEmpty(t, c.States)
	assert.Contains(t, c.Departments, "Sales")
	assert.Contains(t, c.States, "Maharashtra")
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(path, []byte("departments: [Ops, ' Legal ']\nstates: [Goa]\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ops", "Legal"}, c.Departments)
	assert.Equal(t, []string{"Goa"}, c.States)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"malformed", "departments: [", "parse options"},
		{"empty departments", "departments: []\nstates: [Goa]", "departments must not be empty"},
		{"missing states", "departments: [Ops]", "states must not be empty"},
		{"blank option", "departments: [Ops, '  ']\nstates: [Goa]", "departments[1] is blank"},
		{"duplicate option", "departments: [Ops]\nstates: [Goa, goa]", `states[1] "goa" is a duplicate`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNextPrev(t *testing.T) {
	opts := []string{"A", "B", "C"}

	assert.Equal(t, "A", Next(opts, ""))
	assert.Equal(t, "B", Next(opts, "A"))
	assert.Equal(t, "A", Next(opts, "C"))
	assert.Equal(t, "C", Prev(opts, ""))
	assert.Equal(t, "C", Prev(opts, "A"))
	assert.Equal(t, "B", Prev(opts, "c"))
	assert.Equal(t, "x", Next(nil, "x"))
}
