package hclspec

import (
	"fmt"

	"github.com/specialistvlad/colengine/internal/column"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func ctyType(t column.ElementType) cty.Type {
	switch t {
	case column.Bool:
		return cty.Bool
	case column.String:
		return cty.String
	}
	return cty.Number
}

// windowToCty converts one component's values: a single value stays a
// primitive, anything else becomes a list.
func windowToCty(a column.Array) (cty.Value, error) {
	if a.Len() == 1 {
		return gocty.ToCtyValue(a.At(0), ctyType(a.Type()))
	}
	return arrayToList(a)
}

func arrayToList(a column.Array) (cty.Value, error) {
	if a.Len() == 0 {
		return cty.ListValEmpty(ctyType(a.Type())), nil
	}
	vals := make([]cty.Value, a.Len())
	for i := range vals {
		v, err := gocty.ToCtyValue(a.At(i), ctyType(a.Type()))
		if err != nil {
			return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
		}
		vals[i] = v
	}
	return cty.ListVal(vals), nil
}

// valueElements flattens v into its elements. A primitive is one element.
func valueElements(v cty.Value) ([]cty.Value, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("expression produced null")
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("expression produced an unknown value")
	}
	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		return []cty.Value{v}, nil
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		return v.AsValueSlice(), nil
	}
	return nil, fmt.Errorf("expression produced %s, want a value or a list", ty.FriendlyName())
}

// fromCty builds an array of n values of type t from v.
func fromCty(v cty.Value, t column.ElementType, n int) (column.Array, error) {
	elems, err := valueElements(v)
	if err != nil {
		return column.Array{}, err
	}
	if len(elems) != n {
		return column.Array{}, fmt.Errorf("expression produced %d values, want %d", len(elems), n)
	}
	return elementsToArray(elems, t)
}

func elementsToArray(elems []cty.Value, t column.ElementType) (column.Array, error) {
	out := column.NewArray(t, len(elems))
	for i, e := range elems {
		if err := setElement(out, i, e); err != nil {
			return column.Array{}, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return out, nil
}

func setElement(out column.Array, i int, v cty.Value) error {
	v, err := convert.Convert(v, ctyType(out.Type()))
	if err != nil {
		return err
	}
	if v.IsNull() {
		return fmt.Errorf("value is null")
	}
	switch out.Type() {
	case column.Bool:
		return decodeInto[bool](out, i, v)
	case column.Uint8:
		return decodeInto[uint8](out, i, v)
	case column.Uint32:
		return decodeInto[uint32](out, i, v)
	case column.Int32:
		return decodeInto[int32](out, i, v)
	case column.Int64:
		return decodeInto[int64](out, i, v)
	case column.Float32:
		return decodeInto[float32](out, i, v)
	case column.Float64:
		return decodeInto[float64](out, i, v)
	case column.String:
		return decodeInto[string](out, i, v)
	}
	return fmt.Errorf("unsupported element type %s", out.Type())
}

func decodeInto[T column.Element](out column.Array, i int, v cty.Value) error {
	var x T
	if err := gocty.FromCtyValue(v, &x); err != nil {
		return err
	}
	return out.Set(i, x)
}
