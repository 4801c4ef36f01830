package app

import (
	"context"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// Result is the evaluated values of one column.
type Result struct {
	ID      colid.ID
	Arity   int
	Version uint64 // zero for raw columns
	Values  column.Array
}

// Eval materializes each column in ids. A negative index returns the whole
// column; otherwise only the values of the component at index.
func (a *App) Eval(ctx context.Context, ids []colid.ID, index int) ([]Result, error) {
	ctx = a.Context(ctx)
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		res := Result{ID: id, Arity: 1}
		if spec, err := a.registry.Spec(id); err == nil {
			res.Arity = spec.Arity
			res.Version = spec.Version()
		} else if arity, ok := a.store.RawArity(id); ok {
			res.Arity = arity
		}

		var err error
		if index < 0 {
			res.Values, err = a.store.Column(ctx, id)
		} else {
			res.Values, err = a.engine.Value(ctx, id, index)
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ColumnsOfKind returns the registered columns computed per component of
// kind, in canonical order.
func (a *App) ColumnsOfKind(kind column.ComponentKind) []colid.ID {
	var ids []colid.ID
	for _, info := range a.registry.Describe() {
		if info.Kind == kind {
			ids = append(ids, info.ID)
		}
	}
	return ids
}
