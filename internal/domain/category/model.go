package category

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName = errors.New("category name cannot be empty")
)

// SeedNames is the registry contents on first run. A brand-new install gets
// these two course types rather than an empty picker.
var SeedNames = []string{"MA Physique", "S Specialty"}

// Category is a named course type used to classify lessons and constrain
// student bindings. Name is the key.
type Category struct {
	Name string
}

// Validate checks if the Category has valid data.
// PRE: Category struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Union merges registry names with in-use names, preserving first-seen order
// and dropping duplicates and blanks. Historically-used categories stay
// offerable even after removal from the registry.
// POST: Returns a new slice; inputs are not mutated
func Union(registry, inUse []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range registry {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range inUse {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
