package hclspec

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/zclconf/go-cty/cty"
)

// Column is one decoded column definition.
type Column struct {
	ID   colid.ID
	Spec *column.Spec
	// Range locates the column block in its source file.
	Range hcl.Range
}

func translateColumn(b *columnBlock) (*Column, error) {
	id := colid.New(colid.ComponentClass(b.Class), b.Name)
	fail := func(format string, args ...any) error {
		return &column.ConfigurationError{ID: id, Reason: fmt.Sprintf("%s: ", b.DefRange) + fmt.Sprintf(format, args...)}
	}
	if err := id.Validate(); err != nil {
		return nil, fail("%v", err)
	}

	et, err := column.ParseElementType(b.Type)
	if err != nil {
		return nil, fail("%v", err)
	}
	kind, err := column.ParseComponentKind(b.Component)
	if err != nil {
		return nil, fail("%v", err)
	}
	deps, err := colid.ParseAll(b.DependsOn)
	if err != nil {
		return nil, fail("depends_on: %v", err)
	}

	spec := &column.Spec{
		ElementType:  et,
		Arity:        1,
		Kind:         kind,
		Dependencies: deps,
	}
	if b.Arity != nil {
		spec.Arity = *b.Arity
	}
	if b.Filterable != nil {
		spec.Filterable = *b.Filterable
	}
	if b.Version != nil {
		if *b.Version < 0 {
			return nil, fail("version cannot be negative, got %d", *b.Version)
		}
		spec.InitialVersion = uint64(*b.Version)
	}

	hasValue, hasFill := !isAbsent(b.Value), !isAbsent(b.Fill)
	switch {
	case hasValue && hasFill:
		return nil, fail("set either value or fill, not both")
	case hasValue:
		if diags := checkExpression(b.Value, []string{varDeps, varIndex, varCount}, len(deps)); diags.HasErrors() {
			return nil, fail("value: %s", diags.Error())
		}
		spec.Strategy = column.Scalar{Fn: scalarFunc(b.Value, spec.ElementType, spec.Arity)}
	case hasFill:
		if diags := checkExpression(b.Fill, []string{varDeps, varCount}, len(deps)); diags.HasErrors() {
			return nil, fail("fill: %s", diags.Error())
		}
		spec.Strategy = column.Vectorized{Fn: fillFunc(b.Fill, spec.ElementType, spec.Arity)}
	default:
		return nil, fail("one of value or fill is required")
	}

	if err := spec.Validate(id); err != nil {
		return nil, err
	}
	return &Column{ID: id, Spec: spec, Range: b.DefRange}, nil
}

// scalarFunc evaluates expr once per component.
func scalarFunc(expr hcl.Expression, et column.ElementType, arity int) column.ScalarFunc {
	return func(ec *column.EvaluationContext) (column.Array, error) {
		deps := make([]cty.Value, len(ec.Deps))
		for i, d := range ec.Deps {
			v, err := windowToCty(d)
			if err != nil {
				return column.Array{}, fmt.Errorf("dependency %d: %w", i, err)
			}
			deps[i] = v
		}
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				varDeps:  cty.TupleVal(deps),
				varIndex: cty.NumberIntVal(int64(ec.Index)),
				varCount: cty.NumberIntVal(int64(ec.Count)),
			},
			Functions: exprFunctions,
		}
		v, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return column.Array{}, diags
		}
		return fromCty(v, et, arity)
	}
}

// fillFunc evaluates expr once and broadcasts the result. The result may be
// a single value, Arity values repeated for every component, or the whole
// column.
func fillFunc(expr hcl.Expression, et column.ElementType, arity int) column.VectorizedFunc {
	return func(ec *column.EvaluationContext, out column.Array) (column.Array, error) {
		deps := make([]cty.Value, len(ec.Deps))
		for i, d := range ec.Deps {
			v, err := arrayToList(d)
			if err != nil {
				return column.Array{}, fmt.Errorf("dependency %d: %w", i, err)
			}
			deps[i] = v
		}
		evalCtx := &hcl.EvalContext{
			Variables: map[string]cty.Value{
				varDeps:  cty.TupleVal(deps),
				varCount: cty.NumberIntVal(int64(ec.Count)),
			},
			Functions: exprFunctions,
		}
		v, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return column.Array{}, diags
		}

		elems, err := valueElements(v)
		if err != nil {
			return column.Array{}, err
		}
		pattern, err := elementsToArray(elems, et)
		if err != nil {
			return column.Array{}, err
		}

		total := out.Len()
		switch pattern.Len() {
		case total:
			return pattern, nil
		case 1, arity:
		default:
			return column.Array{}, fmt.Errorf("fill produced %d values, want 1, %d or %d", pattern.Len(), arity, total)
		}
		for off := 0; off < total; off += pattern.Len() {
			if err := pattern.CopyInto(out, off); err != nil {
				return column.Array{}, err
			}
		}
		return out, nil
	}
}
