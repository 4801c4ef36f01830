package registry

import (
	"context"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/ctxlog"
)

// BumpVersionsOnDependents increments the version of id and of every column
// reachable from it along dependent edges, each exactly once, and returns
// the identities whose version changed. Identities without a registered
// spec, such as raw dataframe columns, are walked through but not bumped.
func (m *Manager) BumpVersionsOnDependents(ctx context.Context, id colid.ID) []colid.ID {
	m.mu.Lock()
	defer m.mu.Unlock()

	bumped := m.bumpLocked(id)
	ctxlog.FromContext(ctx).Debug("Bumped column versions.", "column", id.Key(), "bumped", len(bumped))
	return bumped
}

// Invalidate marks id and everything computed from it as stale. Call it when
// a raw column changes in the dataframe; registered columns are invalidated
// by RegisterColumn automatically.
func (m *Manager) Invalidate(ctx context.Context, id colid.ID) []colid.ID {
	return m.BumpVersionsOnDependents(ctx, id)
}

func (m *Manager) bumpLocked(id colid.ID) []colid.ID {
	var bumped []colid.ID
	for _, reached := range m.graph.Reachable(id) {
		spec, ok := m.specLocked(reached)
		if !ok {
			continue
		}
		spec.BumpVersion()
		bumped = append(bumped, reached)
	}
	m.metrics.VersionsBumped(len(bumped))
	return bumped
}
