package registry

import (
	"sync"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/dag"
	"github.com/specialistvlad/colengine/internal/metrics"
)

// Manager holds the active specs, keyed by component class and name, and the
// dependency graph over their identities.
type Manager struct {
	mu      sync.RWMutex
	graph   *dag.Graph
	active  map[colid.ComponentClass]map[string]*column.Spec
	metrics *metrics.Observer
}

// Option configures a Manager.
type Option func(*Manager)

// WithObserver records registry activity on o.
func WithObserver(o *metrics.Observer) Option {
	return func(m *Manager) { m.metrics = o }
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		graph:  dag.New(),
		active: make(map[colid.ComponentClass]map[string]*column.Spec),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) specLocked(id colid.ID) (*column.Spec, bool) {
	byName, ok := m.active[id.Class]
	if !ok {
		return nil, false
	}
	spec, ok := byName[id.Name]
	return spec, ok
}

func (m *Manager) setLocked(id colid.ID, spec *column.Spec) {
	byName, ok := m.active[id.Class]
	if !ok {
		byName = make(map[string]*column.Spec)
		m.active[id.Class] = byName
	}
	byName[id.Name] = spec
}

func (m *Manager) deleteLocked(id colid.ID) {
	byName, ok := m.active[id.Class]
	if !ok {
		return
	}
	delete(byName, id.Name)
	if len(byName) == 0 {
		delete(m.active, id.Class)
	}
}

// pruneLocked drops nodes that were only ever referenced as dependencies and
// are now isolated.
func (m *Manager) pruneLocked(g *dag.Graph, candidates []colid.ID) {
	for _, c := range candidates {
		if _, registered := m.specLocked(c); registered {
			continue
		}
		deps, err := g.Dependencies(c)
		if err != nil || len(deps) > 0 || g.HasDependents(c) {
			continue
		}
		g.RemoveNode(c)
	}
}
