package encodings

import (
	"fmt"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
)

// NewLogicalEdges copies the forward edge list, two point indices per edge.
func NewLogicalEdges() *column.Spec {
	return &column.Spec{
		ElementType:  column.Uint32,
		Arity:        2,
		Kind:         column.Edge,
		Dependencies: []colid.ID{ForwardsEdges},
		Strategy: column.Vectorized{Fn: func(ec *column.EvaluationContext, out column.Array) (column.Array, error) {
			if err := ec.Deps[0].CopyInto(out, 0); err != nil {
				return column.Array{}, err
			}
			return out, nil
		}},
	}
}

// NewForwardsEdgeStartEndIdxs computes, per point, the half-open range of
// edges in the forward edge list whose source is that point.
func NewForwardsEdgeStartEndIdxs() *column.Spec {
	return edgeRangeSpec(ForwardsEdges)
}

// NewBackwardsEdgeStartEndIdxs is NewForwardsEdgeStartEndIdxs over the
// backward edge list.
func NewBackwardsEdgeStartEndIdxs() *column.Spec {
	return edgeRangeSpec(BackwardsEdges)
}

func edgeRangeSpec(edges colid.ID) *column.Spec {
	return &column.Spec{
		ElementType:  column.Uint32,
		Arity:        2,
		Kind:         column.Point,
		Dependencies: []colid.ID{edges},
		Strategy: column.Vectorized{Fn: func(ec *column.EvaluationContext, out column.Array) (column.Array, error) {
			pairs, ok := column.Values[uint32](ec.Deps[0])
			if !ok {
				return column.Array{}, fmt.Errorf("edge list is %s, want uint32", ec.Deps[0].Type())
			}
			return edgeRanges(pairs, ec.Count, out)
		}},
	}
}

// edgeRanges expects pairs sorted by source point.
func edgeRanges(pairs []uint32, points int, out column.Array) (column.Array, error) {
	if len(pairs)%2 != 0 {
		return column.Array{}, fmt.Errorf("edge list has odd length %d", len(pairs))
	}
	ranges, _ := column.Values[uint32](out)
	numEdges := len(pairs) / 2

	edge := 0
	for p := 0; p < points; p++ {
		start := edge
		for edge < numEdges && int(pairs[2*edge]) == p {
			edge++
		}
		ranges[2*p] = uint32(start)
		ranges[2*p+1] = uint32(edge)
	}
	if edge != numEdges {
		return column.Array{}, fmt.Errorf("edge %d has source %d: edges must be sorted by source point below %d", edge, pairs[2*edge], points)
	}
	return out, nil
}

// NewPointColors maps each point's community to a palette colour.
func NewPointColors() *column.Spec {
	return &column.Spec{
		ElementType:  column.Uint32,
		Arity:        1,
		Kind:         column.Point,
		Filterable:   true,
		Dependencies: []colid.ID{PointCommunity},
		Strategy: column.Scalar{Fn: func(ec *column.EvaluationContext) (column.Array, error) {
			community, ok := ec.Deps[0].Float64(0)
			if !ok || community < 0 {
				return column.Array{}, fmt.Errorf("community must be a non-negative number, got %v", ec.Deps[0])
			}
			return column.ArrayOf(Palette[int(community)%len(Palette)]), nil
		}},
	}
}

// NewEdgeColors gives each edge endpoint the colour of its point.
func NewEdgeColors() *column.Spec {
	return &column.Spec{
		ElementType:  column.Uint32,
		Arity:        2,
		Kind:         column.Edge,
		Filterable:   true,
		Dependencies: []colid.ID{ForwardsEdges, PointColors},
		Strategy: column.Vectorized{Fn: func(ec *column.EvaluationContext, out column.Array) (column.Array, error) {
			edges, ok := column.Values[uint32](ec.Deps[0])
			if !ok {
				return column.Array{}, fmt.Errorf("edge list is %s, want uint32", ec.Deps[0].Type())
			}
			colors, ok := column.Values[uint32](ec.Deps[1])
			if !ok {
				return column.Array{}, fmt.Errorf("point colours are %s, want uint32", ec.Deps[1].Type())
			}
			vals, _ := column.Values[uint32](out)
			for i := range vals {
				p := edges[i]
				if int(p) >= len(colors) {
					return column.Array{}, fmt.Errorf("edge endpoint %d refers to point %d of %d", i, p, len(colors))
				}
				vals[i] = colors[p]
			}
			return out, nil
		}},
	}
}

// NewPointSizes passes each point's default size through.
func NewPointSizes() *column.Spec {
	return &column.Spec{
		ElementType:  column.Uint8,
		Arity:        1,
		Kind:         column.Point,
		Filterable:   true,
		Dependencies: []colid.ID{DefaultPointSize},
		Strategy: column.Scalar{Fn: func(ec *column.EvaluationContext) (column.Array, error) {
			size, ok := ec.Deps[0].Float64(0)
			if !ok {
				return column.Array{}, fmt.Errorf("point size must be numeric, got %s", ec.Deps[0].Type())
			}
			out := column.NewArray(column.Uint8, 1)
			if err := out.Set(0, size); err != nil {
				return column.Array{}, err
			}
			return out, nil
		}},
	}
}

// NewEdgeHeights is zero at both ends of every edge.
func NewEdgeHeights() *column.Spec {
	return &column.Spec{
		ElementType: column.Float32,
		Arity:       2,
		Kind:        column.Edge,
		Filterable:  true,
		Strategy: column.Scalar{Fn: func(*column.EvaluationContext) (column.Array, error) {
			return column.NewArray(column.Float32, 2), nil
		}},
	}
}
