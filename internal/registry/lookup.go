package registry

import (
	"slices"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// View is the read-only surface available inside Read.
type View interface {
	// Spec returns the active spec at id.
	Spec(id colid.ID) (*column.Spec, bool)
}

type lockedView struct{ m *Manager }

func (v lockedView) Spec(id colid.ID) (*column.Spec, bool) {
	return v.m.specLocked(id)
}

// Read runs fn while holding the read lock, so every lookup fn makes sees
// the same registry state. fn must not call back into the Manager.
func (m *Manager) Read(fn func(View) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(lockedView{m: m})
}

// HasColumn reports whether a spec is registered at id.
func (m *Manager) HasColumn(id colid.ID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.specLocked(id)
	return ok
}

// Spec returns the spec registered at id.
func (m *Manager) Spec(id colid.ID) (*column.Spec, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	spec, ok := m.specLocked(id)
	if !ok {
		return nil, &column.UnknownColumnError{ID: id}
	}
	return spec, nil
}

// Version returns the current version of the spec registered at id.
func (m *Manager) Version(id colid.ID) (uint64, error) {
	spec, err := m.Spec(id)
	if err != nil {
		return 0, err
	}
	return spec.Version(), nil
}

// ListActiveColumns returns the registered column names grouped by class,
// each group sorted.
func (m *Manager) ListActiveColumns() map[colid.ComponentClass][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[colid.ComponentClass][]string, len(m.active))
	for class, byName := range m.active {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		slices.Sort(names)
		out[class] = names
	}
	return out
}

// ActiveIDs returns every registered identity in canonical order.
func (m *Manager) ActiveIDs() []colid.ID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []colid.ID
	for class, byName := range m.active {
		for name := range byName {
			ids = append(ids, colid.New(class, name))
		}
	}
	colid.Sort(ids)
	return ids
}

// Dependencies returns the identities id reads, as recorded in the graph.
func (m *Manager) Dependencies(id colid.ID) ([]colid.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph.Dependencies(id)
}

// Dependents returns the identities that read id.
func (m *Manager) Dependents(id colid.ID) ([]colid.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph.Dependents(id)
}

// GraphSize returns the number of nodes and edges in the dependency graph.
func (m *Manager) GraphSize() (nodes, edges int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.graph.Len(), m.graph.EdgeCount()
}

// ColumnInfo summarizes one registered column.
type ColumnInfo struct {
	ID           colid.ID
	Version      uint64
	ElementType  column.ElementType
	Arity        int
	Kind         column.ComponentKind
	Filterable   bool
	Strategy     string
	Dependencies []colid.ID
	Dependents   []colid.ID
}

// Describe returns a summary of every registered column in canonical order.
func (m *Manager) Describe() []ColumnInfo {
	ids := m.ActiveIDs()

	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]ColumnInfo, 0, len(ids))
	for _, id := range ids {
		spec, ok := m.specLocked(id)
		if !ok {
			continue
		}
		deps, _ := m.graph.Dependencies(id)
		dependents, _ := m.graph.Dependents(id)
		infos = append(infos, ColumnInfo{
			ID:           id,
			Version:      spec.Version(),
			ElementType:  spec.ElementType,
			Arity:        spec.Arity,
			Kind:         spec.Kind,
			Filterable:   spec.Filterable,
			Strategy:     column.StrategyName(spec.Strategy),
			Dependencies: deps,
			Dependents:   dependents,
		})
	}
	return infos
}
