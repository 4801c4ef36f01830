package hclspec

import (
	"context"
	"fmt"

	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/ctxlog"
	"github.com/specialistvlad/colengine/internal/encodings"
	"github.com/specialistvlad/colengine/internal/inmemoryframe"
)

// Populate loads the dataset block, if any, into store.
func (d *Definitions) Populate(ctx context.Context, store *inmemoryframe.Store) error {
	if d.Dataset == nil {
		return nil
	}
	if err := store.SetNumElements(column.Point, d.Dataset.Vertices); err != nil {
		return err
	}
	if err := store.SetNumElements(column.Edge, d.Dataset.Edges); err != nil {
		return err
	}
	for _, raw := range d.Dataset.Raw {
		if err := store.SetColumn(raw.ID, raw.Values, raw.Arity); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Populated dataset.",
		"vertices", d.Dataset.Vertices,
		"edges", d.Dataset.Edges,
		"raw_columns", len(d.Dataset.Raw),
	)
	return nil
}

// Register registers every decoded column in file order.
func (d *Definitions) Register(ctx context.Context, loader *encodings.Loader) error {
	for _, c := range d.Columns {
		colCtx := ctxlog.With(ctx, "source", c.Range.String())
		if err := loader.AddComputedColumn(colCtx, c.ID, c.Spec); err != nil {
			return fmt.Errorf("%s: %w", c.Range, err)
		}
	}
	return nil
}
