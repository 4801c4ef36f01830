package dataframe

import (
	"context"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// Store is implemented by the dataframe that owns the raw columns.
//
// Implementations MUST be safe for concurrent reads, because evaluations of
// different columns may run in parallel under the registry's read lock.
type Store interface {
	// Cell returns the value of a raw column for one component: a window of
	// the column's per-component arity.
	Cell(ctx context.Context, index int, class colid.ComponentClass, name string) (column.Array, error)

	// ColumnValues returns the full dense array of a raw column.
	ColumnValues(ctx context.Context, name string, class colid.ComponentClass) (column.Array, error)

	// NumElements returns the current number of vertices or edges.
	NumElements(ctx context.Context, kind column.ComponentKind) (int, error)

	// RegisterDerivedColumn notifies the store that a derived column now
	// exists and can be read through reader. The store receives the engine's
	// read side rather than the registry because reading a derived column
	// means materializing it, which only the engine does.
	RegisterDerivedColumn(ctx context.Context, reader Reader, class colid.ComponentClass, name string)
}

// Reader is the read side of the engine handed to the store, so the store
// can serve derived columns without knowing how they are computed.
type Reader interface {
	Value(ctx context.Context, id colid.ID, index int) (column.Array, error)
	Dense(ctx context.Context, id colid.ID) (column.Array, error)
}

// Generational is implemented by stores that count their writes. The
// engine's dense cache keys entries by the generation, so a raw column
// written after an entry was built is never served stale.
type Generational interface {
	// Generation changes whenever a raw column or an element count changes.
	Generation() uint64
}
