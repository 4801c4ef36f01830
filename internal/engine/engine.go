package engine

import (
	"context"
	"errors"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/dataframe"
	"github.com/specialistvlad/colengine/internal/metrics"
	"github.com/specialistvlad/colengine/internal/registry"
)

// Engine materializes registered columns on demand.
type Engine struct {
	reg     *registry.Manager
	store   dataframe.Store
	metrics *metrics.Observer
	cache   *denseCache
}

var _ dataframe.Reader = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithObserver records materializations and failures on o.
func WithObserver(o *metrics.Observer) Option {
	return func(e *Engine) { e.metrics = o }
}

// WithDenseCache keeps up to size dense arrays of vectorized columns so that
// repeated single-value reads do not recompute the whole column. A size of
// zero or less disables the cache.
//
// Cached values must match the uncached path. Entries are dropped when a spec
// version changes and, for stores implementing dataframe.Generational, when
// the store is written. With any other store, call registry.Manager.Invalidate
// for every raw column that changes.
func WithDenseCache(size int) Option {
	return func(e *Engine) {
		if size <= 0 {
			e.cache = nil
			return
		}
		e.cache = newDenseCache(size)
	}
}

// New creates an Engine over reg and store.
func New(reg *registry.Manager, store dataframe.Store, opts ...Option) *Engine {
	e := &Engine{reg: reg, store: store}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Value returns the Arity values of id for the component at index.
func (e *Engine) Value(ctx context.Context, id colid.ID, index int) (column.Array, error) {
	var out column.Array
	err := e.reg.Read(func(v registry.View) error {
		var err error
		out, err = e.value(ctx, v, id, index)
		return err
	})
	if err != nil {
		e.metrics.EvaluationFailed(id, errorType(err))
		return column.Array{}, err
	}
	return out, nil
}

// Dense returns the full array of id, Arity values per component.
func (e *Engine) Dense(ctx context.Context, id colid.ID) (column.Array, error) {
	var out column.Array
	err := e.reg.Read(func(v registry.View) error {
		var err error
		out, err = e.dense(ctx, v, id)
		return err
	})
	if err != nil {
		e.metrics.EvaluationFailed(id, errorType(err))
		return column.Array{}, err
	}
	return out, nil
}

func errorType(err error) string {
	var (
		cfgErr     *column.ConfigurationError
		compErr    *column.ComputationError
		unknownErr *column.UnknownColumnError
		indexErr   *column.IndexError
	)
	switch {
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &compErr):
		return "computation"
	case errors.As(err, &unknownErr):
		return "unknown_column"
	case errors.As(err, &indexErr):
		return "index"
	}
	return "other"
}
