package registry

import (
	"context"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/ctxlog"
	"github.com/specialistvlad/colengine/internal/metrics"
)

// RegisterColumn installs spec as the active spec for id.
//
// When id is already registered only its inbound edges are replaced; columns
// that read id keep their edges. The change is staged on a copy of the graph
// and committed only if it is still acyclic, so on error nothing changes.
// On success the versions of id and of everything downstream are bumped. A
// replacement spec starts from the version of the spec it replaces, so the
// version of id strictly increases across registrations.
func (m *Manager) RegisterColumn(ctx context.Context, id colid.ID, spec *column.Spec) error {
	logger := ctxlog.FromContext(ctx)

	if err := id.Validate(); err != nil {
		m.metrics.Registered(metrics.OutcomeInvalid)
		return &column.ConfigurationError{ID: id, Reason: err.Error()}
	}
	if err := spec.Validate(id); err != nil {
		m.metrics.Registered(metrics.OutcomeInvalid)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	previous, replacing := m.specLocked(id)
	staged := m.graph.Clone()

	var previousDeps []colid.ID
	if replacing {
		previousDeps, _ = staged.Dependencies(id)
		staged.RemoveInboundEdges(id)
	}

	staged.AddNode(id)
	for _, dep := range spec.Dependencies {
		staged.AddNode(dep)
		if err := staged.AddEdge(dep, id); err != nil {
			m.metrics.Registered(metrics.OutcomeCycle)
			return &column.CycleError{ID: id, Err: err}
		}
	}

	if err := staged.DetectCycles(); err != nil {
		m.metrics.Registered(metrics.OutcomeCycle)
		logger.Debug("Rejected column registration.", "column", id.Key(), "error", err)
		return &column.CycleError{ID: id, Err: err}
	}

	if replacing {
		// A replacement continues the identity's version sequence.
		spec.AdvanceTo(previous.Version())
	}
	m.setLocked(id, spec)
	m.pruneLocked(staged, previousDeps)
	m.graph = staged

	bumped := m.bumpLocked(id)

	outcome := metrics.OutcomeRegistered
	if replacing {
		outcome = metrics.OutcomeReplaced
	}
	m.metrics.Registered(outcome)
	logger.Debug("Registered column.",
		"column", id.Key(),
		"replaced", replacing,
		"dependencies", len(spec.Dependencies),
		"version", spec.Version(),
		"bumped", len(bumped),
	)
	return nil
}

// RemoveColumn deletes the spec registered at id and its graph node. It is
// refused while any other column still reads id.
func (m *Manager) RemoveColumn(ctx context.Context, id colid.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.specLocked(id); !ok {
		return &column.UnknownColumnError{ID: id}
	}

	if m.graph.HasDependents(id) {
		dependents, _ := m.graph.Dependents(id)
		return &column.DependencyViolationError{ID: id, Dependents: dependents}
	}

	deps, _ := m.graph.Dependencies(id)
	m.deleteLocked(id)
	m.graph.RemoveNode(id)
	m.pruneLocked(m.graph, deps)

	m.metrics.Removed()
	ctxlog.FromContext(ctx).Debug("Removed column.", "column", id.Key())
	return nil
}
