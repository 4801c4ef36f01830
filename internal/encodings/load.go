package encodings

import (
	"context"
	"fmt"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/ctxlog"
	"github.com/specialistvlad/colengine/internal/dataframe"
	"github.com/specialistvlad/colengine/internal/registry"
)

// Loader registers columns on one dataset's registry and announces them to
// its dataframe.
type Loader struct {
	reg    *registry.Manager
	store  dataframe.Store
	reader dataframe.Reader
}

// NewLoader creates a Loader. reader is what the store will use to read the
// derived columns back, normally the dataset's engine.
func NewLoader(reg *registry.Manager, store dataframe.Store, reader dataframe.Reader) *Loader {
	return &Loader{reg: reg, store: store, reader: reader}
}

type named struct {
	id  colid.ID
	new func() *column.Spec
}

var defaultColumns = []named{
	{ForwardsEdgeWeights, NewForwardsEdgeWeights},
	{BackwardsEdgeWeights, NewBackwardsEdgeWeights},
}

// Local buffers in dependency order.
var defaultLocalBuffers = []named{
	{LogicalEdges, NewLogicalEdges},
	{ForwardsEdgeStartEndIdxs, NewForwardsEdgeStartEndIdxs},
	{BackwardsEdgeStartEndIdxs, NewBackwardsEdgeStartEndIdxs},
	{PointColors, NewPointColors},
	{EdgeColors, NewEdgeColors},
	{PointSizes, NewPointSizes},
	{EdgeHeights, NewEdgeHeights},
}

// DefaultLocalBufferNames lists the local buffers LoadDefaultLocalBuffer
// accepts.
func DefaultLocalBufferNames() []string {
	names := make([]string, len(defaultLocalBuffers))
	for i, n := range defaultLocalBuffers {
		names[i] = n.id.Name
	}
	return names
}

// AddComputedColumn registers spec at id and, on success, tells the store
// the column exists.
func (l *Loader) AddComputedColumn(ctx context.Context, id colid.ID, spec *column.Spec) error {
	if err := l.reg.RegisterColumn(ctx, id, spec); err != nil {
		return err
	}
	l.store.RegisterDerivedColumn(ctx, l.reader, id.Class, id.Name)
	return nil
}

// LoadDefaultColumns registers the default host buffers.
func (l *Loader) LoadDefaultColumns(ctx context.Context) error {
	return l.loadAll(ctx, defaultColumns)
}

// LoadEncodingColumns registers the default local buffers.
func (l *Loader) LoadEncodingColumns(ctx context.Context) error {
	return l.loadAll(ctx, defaultLocalBuffers)
}

// LoadDefaultLocalBuffer restores one default local buffer, replacing
// whatever is registered under its name.
func (l *Loader) LoadDefaultLocalBuffer(ctx context.Context, name string) error {
	for _, n := range defaultLocalBuffers {
		if n.id.Name == name {
			return l.AddComputedColumn(ctx, n.id, n.new())
		}
	}
	return &column.ConfigurationError{
		ID:     colid.New(colid.LocalBuffer, name),
		Reason: "no default local buffer with this name",
	}
}

func (l *Loader) loadAll(ctx context.Context, cols []named) error {
	for _, n := range cols {
		if err := l.AddComputedColumn(ctx, n.id, n.new()); err != nil {
			return fmt.Errorf("loading default column '%s': %w", n.id, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Loaded default columns.", "count", len(cols))
	return nil
}
