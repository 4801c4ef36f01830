package encodings

import (
	"github.com/specialistvlad/colengine/internal/column"
)

func unitWeights(_ *column.EvaluationContext, out column.Array) (column.Array, error) {
	vals, _ := column.Values[float32](out)
	for i := range vals {
		vals[i] = 1.0
	}
	return out, nil
}

// NewForwardsEdgeWeights is a constant weight of 1 per edge.
func NewForwardsEdgeWeights() *column.Spec {
	return &column.Spec{
		ElementType: column.Float32,
		Arity:       1,
		Kind:        column.Edge,
		Filterable:  true,
		Strategy:    column.Vectorized{Fn: unitWeights},
	}
}

// NewBackwardsEdgeWeights is a constant weight of 1 per edge.
func NewBackwardsEdgeWeights() *column.Spec {
	return &column.Spec{
		ElementType: column.Float32,
		Arity:       1,
		Kind:        column.Edge,
		Filterable:  true,
		Strategy:    column.Vectorized{Fn: unitWeights},
	}
}
