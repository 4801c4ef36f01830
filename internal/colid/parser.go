// internal/colid/parser.go
package colid

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	classRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z0-9_.\-]+$`)
)

// isValidName rejects names that are syntactically valid but ambiguous.
func isValidName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return true
}

// Parse creates an ID from its composite "<class>:<name>" key.
func Parse(key string) (ID, error) {
	if key == "" {
		return ID{}, fmt.Errorf("column key cannot be empty")
	}

	class, name, found := strings.Cut(key, separator)
	if !found {
		return ID{}, fmt.Errorf("column key %q is missing the %q separator", key, separator)
	}
	if class == "" {
		return ID{}, fmt.Errorf("column key %q has an empty class", key)
	}
	if name == "" {
		return ID{}, fmt.Errorf("column key %q has an empty name", key)
	}
	if strings.Contains(name, separator) {
		return ID{}, fmt.Errorf("column key %q contains more than one separator", key)
	}
	if !classRegex.MatchString(class) {
		return ID{}, fmt.Errorf("invalid component class: %q", class)
	}
	if !nameRegex.MatchString(name) || !isValidName(name) {
		return ID{}, fmt.Errorf("invalid column name: %q", name)
	}

	return ID{Class: ComponentClass(class), Name: name}, nil
}

// MustParse is like Parse but panics on malformed keys. It is intended for
// package-level literals and tests.
func MustParse(key string) ID {
	id, err := Parse(key)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseAll parses every key, stopping at the first malformed one.
func ParseAll(keys []string) ([]ID, error) {
	ids := make([]ID, 0, len(keys))
	for _, k := range keys {
		id, err := Parse(k)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
