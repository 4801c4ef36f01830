package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/ctxlog"
	"github.com/specialistvlad/colengine/internal/registry"
)

func (e *Engine) value(ctx context.Context, v registry.View, id colid.ID, index int) (column.Array, error) {
	spec, ok := v.Spec(id)
	if !ok {
		return e.store.Cell(ctx, index, id.Class, id.Name)
	}
	if err := spec.Validate(id); err != nil {
		return column.Array{}, err
	}

	count, err := e.store.NumElements(ctx, spec.Kind)
	if err != nil {
		return column.Array{}, err
	}
	if index < 0 || index >= count {
		return column.Array{}, &column.IndexError{ID: id, Index: index, Count: count}
	}

	switch st := spec.Strategy.(type) {
	case column.Scalar:
		deps := make([]column.Array, len(spec.Dependencies))
		for i, dep := range spec.Dependencies {
			if deps[i], err = e.value(ctx, v, dep, index); err != nil {
				return column.Array{}, err
			}
		}
		ec := &column.EvaluationContext{ID: id, Deps: deps, Index: index, Count: count}
		return callScalar(spec, st.Fn, ec)

	case column.Vectorized:
		dense, err := e.cachedDense(ctx, v, id, spec, count)
		if err != nil {
			return column.Array{}, err
		}
		return dense.Window(index*spec.Arity, (index+1)*spec.Arity), nil
	}
	return column.Array{}, &column.ConfigurationError{ID: id, Reason: "no compute strategy"}
}

func (e *Engine) dense(ctx context.Context, v registry.View, id colid.ID) (column.Array, error) {
	spec, ok := v.Spec(id)
	if !ok {
		return e.store.ColumnValues(ctx, id.Name, id.Class)
	}
	if err := spec.Validate(id); err != nil {
		return column.Array{}, err
	}

	count, err := e.store.NumElements(ctx, spec.Kind)
	if err != nil {
		return column.Array{}, err
	}

	deps := make([]column.Array, len(spec.Dependencies))
	for i, dep := range spec.Dependencies {
		if deps[i], err = e.dense(ctx, v, dep); err != nil {
			return column.Array{}, err
		}
	}

	start := time.Now()
	var out column.Array
	switch st := spec.Strategy.(type) {
	case column.Vectorized:
		out, err = denseVectorized(id, spec, st.Fn, deps, count)
	case column.Scalar:
		var widths []int
		if widths, err = e.dependencyWidths(ctx, v, spec, deps, count); err == nil {
			out, err = denseScalar(id, spec, st.Fn, deps, widths, count)
		}
	default:
		err = &column.ConfigurationError{ID: id, Reason: "no compute strategy"}
	}
	if err != nil {
		return column.Array{}, err
	}

	elapsed := time.Since(start)
	strategy := column.StrategyName(spec.Strategy)
	e.metrics.Materialized(id, strategy, elapsed)
	ctxlog.FromContext(ctx).Debug("Materialized column.",
		"column", id.Key(),
		"strategy", strategy,
		"version", spec.Version(),
		"components", count,
		"values", out.Len(),
		"duration", elapsed,
	)
	return out, nil
}

func denseVectorized(id colid.ID, spec *column.Spec, fn column.VectorizedFunc, deps []column.Array, count int) (column.Array, error) {
	size := spec.Arity * count
	buf := column.NewArray(spec.ElementType, size)
	ec := &column.EvaluationContext{ID: id, Deps: deps, Index: -1, Count: count}

	out, err := invoke(id, func() (column.Array, error) { return fn(ec, buf) })
	if err != nil {
		return column.Array{}, err
	}
	if out.IsZero() {
		out = buf
	}
	if err := checkShape(id, spec, out, size); err != nil {
		return column.Array{}, err
	}
	return out, nil
}

// dependencyWidths returns how many values of each dependency belong to one
// component. It is the width Value reads: the Arity of a registered
// dependency or the per-component arity of a raw column. A dependency too
// short to cover count components fails the way Value fails at the first
// missing index.
func (e *Engine) dependencyWidths(ctx context.Context, v registry.View, spec *column.Spec, deps []column.Array, count int) ([]int, error) {
	widths := make([]int, len(deps))
	if count == 0 {
		return widths, nil
	}
	for i, dep := range spec.Dependencies {
		if depSpec, ok := v.Spec(dep); ok {
			widths[i] = depSpec.Arity
		} else {
			cell, err := e.store.Cell(ctx, 0, dep.Class, dep.Name)
			if err != nil {
				return nil, err
			}
			widths[i] = cell.Len()
		}
		if widths[i] < 1 {
			return nil, &column.ConfigurationError{ID: dep, Reason: "dependency has no values per component"}
		}
		if have := deps[i].Len() / widths[i]; have < count {
			return nil, &column.IndexError{ID: dep, Index: have, Count: have}
		}
	}
	return widths, nil
}

func denseScalar(id colid.ID, spec *column.Spec, fn column.ScalarFunc, deps []column.Array, widths []int, count int) (column.Array, error) {
	out := column.NewArray(spec.ElementType, spec.Arity*count)
	if count == 0 {
		return out, nil
	}

	window := make([]column.Array, len(deps))
	for idx := 0; idx < count; idx++ {
		for i, dep := range deps {
			window[i] = dep.Window(idx*widths[i], (idx+1)*widths[i])
		}
		ec := &column.EvaluationContext{ID: id, Deps: window, Index: idx, Count: count}
		vals, err := callScalar(spec, fn, ec)
		if err != nil {
			return column.Array{}, err
		}
		if err := vals.CopyInto(out, idx*spec.Arity); err != nil {
			return column.Array{}, &column.ComputationError{ID: id, Err: err}
		}
	}
	return out, nil
}

func callScalar(spec *column.Spec, fn column.ScalarFunc, ec *column.EvaluationContext) (column.Array, error) {
	vals, err := invoke(ec.ID, func() (column.Array, error) { return fn(ec) })
	if err != nil {
		return column.Array{}, err
	}
	if err := checkShape(ec.ID, spec, vals, spec.Arity); err != nil {
		return column.Array{}, err
	}
	return vals, nil
}

// invoke runs a compute function, turning errors and panics into
// *column.ComputationError.
func invoke(id colid.ID, fn func() (column.Array, error)) (out column.Array, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = column.Array{}
			err = &column.ComputationError{ID: id, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	out, err = fn()
	if err != nil {
		return column.Array{}, &column.ComputationError{ID: id, Err: err}
	}
	return out, nil
}

func checkShape(id colid.ID, spec *column.Spec, out column.Array, want int) error {
	if out.Type() != spec.ElementType {
		return &column.ComputationError{ID: id, Err: fmt.Errorf("returned %s values, want %s", out.Type(), spec.ElementType)}
	}
	if out.Len() != want {
		return &column.ComputationError{ID: id, Err: fmt.Errorf("returned %d values, want %d", out.Len(), want)}
	}
	return nil
}
