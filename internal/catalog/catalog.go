// Package catalog provides the fixed option lists (departments, states)
// offered by the entry form's select inputs.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var defaultOptions []byte

// Catalog holds the selectable options, in display order.
type Catalog struct {
	Departments []string `yaml:"departments" json:"departments"`
	States      []string `yaml:"states" json:"states"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultOptions)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded options: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("options file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse options: %w", err)
	}
	for i := range c.Departments {
		c.Departments[i] = strings.TrimSpace(c.Departments[i])
	}
	for i := range c.States {
		c.States[i] = strings.TrimSpace(c.States[i])
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that both lists are non-empty and hold no blank or duplicate options.
func (c *Catalog) Validate() error {
	var errs []string
	errs = append(errs, checkList("departments", c.Departments)...)
	errs = append(errs, checkList("states", c.States)...)
	if len(errs) > 0 {
		return fmt.Errorf("invalid options:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func checkList(name string, opts []string) []string {
	if len(opts) == 0 {
		return []string{name + " must not be empty"}
	}
	var errs []string
	seen := make(map[string]bool, len(opts))
	for i, o := range opts {
		key := strings.ToLower(o)
		switch {
		case o == "":
			errs = append(errs, fmt.Sprintf("%s[%d] is blank", name, i))
		case seen[key]:
			errs = append(errs, fmt.Sprintf("%s[%d] %q is a duplicate", name, i, o))
		}
		seen[key] = true
	}
	return errs
}


// Next returns the option after current, wrapping around. An unknown or empty
// current value yields the first option.
func Next(opts []string, current string) string {
	return step(opts, current, 1)
}

// Prev returns the option before current, wrapping around. An unknown or
// empty current value yields the last option.
func Prev(opts []string, current string) string {
	return step(opts, current, -1)
}

func step(opts []string, current string, delta int) string {
	if len(opts) == 0 {
		return current
	}
	for i, o := range opts {
		if strings.EqualFold(o, current) {
			return opts[(i+delta+len(opts))%len(opts)]
		}
	}
	if delta > 0 {
		return opts[0]
	}
	return opts[len(opts)-1]
}
