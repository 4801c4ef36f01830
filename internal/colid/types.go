// internal/colid/types.go
package colid

import (
	"cmp"
	"slices"
)

// ComponentClass names the storage tier of a column.
type ComponentClass string

const (
	// HostBuffer holds derived columns that are shipped to the host renderer.
	HostBuffer ComponentClass = "hostBuffer"
	// LocalBuffer holds derived columns that stay local to the engine.
	LocalBuffer ComponentClass = "localBuffer"
	// Point holds raw per-vertex attributes of the dataframe.
	Point ComponentClass = "point"
	// Edge holds raw per-edge attributes of the dataframe.
	Edge ComponentClass = "edge"
)

// IsDerived reports whether the class is one of the engine-local tiers.
func (c ComponentClass) IsDerived() bool {
	return c == HostBuffer || c == LocalBuffer
}

// ID is the structured identity of a column. It is comparable and can be
// used directly as a map key.
type ID struct {
	Class ComponentClass
	Name  string
}

// New creates an identity without validating it.
func New(class ComponentClass, name string) ID {
	return ID{Class: class, Name: name}
}

// IsZero reports whether the identity is unset.
func (id ID) IsZero() bool {
	return id.Class == "" && id.Name == ""
}

// Compare orders identities by class, then by name.
func Compare(a, b ID) int {
	if c := cmp.Compare(a.Class, b.Class); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// Sort sorts ids in place into their canonical order.
func Sort(ids []ID) {
	slices.SortFunc(ids, Compare)
}
