package column

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/colengine/internal/colid"
)

// ConfigurationError reports an incomplete or malformed column spec.
type ConfigurationError struct {
	ID     colid.ID
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.ID.IsZero() {
		return "invalid column spec: " + e.Reason
	}
	return fmt.Sprintf("invalid column spec for '%s': %s", e.ID, e.Reason)
}

// CycleError reports a registration that would close a dependency cycle.
type CycleError struct {
	ID  colid.ID
	Err error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("registering '%s' would create a dependency cycle: %v", e.ID, e.Err)
}

func (e *CycleError) Unwrap() error { return e.Err }

// DependencyViolationError reports an attempt to remove a column that other
// columns still read.
type DependencyViolationError struct {
	ID         colid.ID
	Dependents []colid.ID
}

func (e *DependencyViolationError) Error() string {
	names := make([]string, len(e.Dependents))
	for i, d := range e.Dependents {
		names[i] = d.Key()
	}
	return fmt.Sprintf("cannot remove '%s': required by %s", e.ID, strings.Join(names, ", "))
}

// ComputationError wraps a failure raised by a compute strategy.
type ComputationError struct {
	ID  colid.ID
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing '%s': %v", e.ID, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// UnknownColumnError reports a lookup of an identity nobody provides.
type UnknownColumnError struct {
	ID colid.ID
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column '%s'", e.ID)
}

// IndexError reports a component index outside [0, Count).
type IndexError struct {
	ID    colid.ID
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for '%s' with %d components", e.Index, e.ID, e.Count)
}
