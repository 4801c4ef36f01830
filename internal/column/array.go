package column

import (
	"fmt"
	"math"
	"reflect"
)

// Element is the set of Go types that back an Array.
type Element interface {
	bool | uint8 | uint32 | int32 | int64 | float32 | float64 | string
}

// Array is a dense, fixed-width typed buffer. The zero Array is empty and
// has no type.
type Array struct {
	typ  ElementType
	data any
}

// NewArray allocates a zeroed array of n elements of type t.
func NewArray(t ElementType, n int) Array {
	if n < 0 {
		n = 0
	}
	var data any
	switch t {
	case Bool:
		data = make([]bool, n)
	case Uint8:
		data = make([]uint8, n)
	case Uint32:
		data = make([]uint32, n)
	case Int32:
		data = make([]int32, n)
	case Int64:
		data = make([]int64, n)
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case String:
		data = make([]string, n)
	default:
		return Array{}
	}
	return Array{typ: t, data: data}
}

// ArrayOf wraps values in an Array. The slice is not copied.
func ArrayOf[T Element](values ...T) Array {
	if values == nil {
		values = []T{}
	}
	return Array{typ: typeOf[T](), data: values}
}

// Values returns the backing slice of a when its element type is T.
func Values[T Element](a Array) ([]T, bool) {
	v, ok := a.data.([]T)
	return v, ok
}

func typeOf[T Element]() ElementType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case uint8:
		return Uint8
	case uint32:
		return Uint32
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	case string:
		return String
	}
	return InvalidType
}

// Type is the element type of a.
func (a Array) Type() ElementType { return a.typ }

// Data returns the backing slice as an untyped value.
func (a Array) Data() any { return a.data }

// IsZero reports whether a was never allocated.
func (a Array) IsZero() bool { return a.data == nil }

// Len is the number of elements in a.
func (a Array) Len() int {
	if a.data == nil {
		return 0
	}
	return reflect.ValueOf(a.data).Len()
}

// At returns element i. It panics when i is out of range.
func (a Array) At(i int) any {
	switch d := a.data.(type) {
	case []bool:
		return d[i]
	case []uint8:
		return d[i]
	case []uint32:
		return d[i]
	case []int32:
		return d[i]
	case []int64:
		return d[i]
	case []float32:
		return d[i]
	case []float64:
		return d[i]
	case []string:
		return d[i]
	}
	panic("column: At on empty array")
}

// Float64 returns element i as a float64 when a is numeric.
func (a Array) Float64(i int) (float64, bool) {
	switch d := a.data.(type) {
	case []uint8:
		return float64(d[i]), true
	case []uint32:
		return float64(d[i]), true
	case []int32:
		return float64(d[i]), true
	case []int64:
		return float64(d[i]), true
	case []float32:
		return float64(d[i]), true
	case []float64:
		return d[i], true
	}
	return 0, false
}

// Set stores v at index i, converting between numeric types when the value
// fits the element type exactly.
func (a Array) Set(i int, v any) error {
	if i < 0 || i >= a.Len() {
		return fmt.Errorf("index %d out of range [0, %d)", i, a.Len())
	}
	switch d := a.data.(type) {
	case []bool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("cannot store %T in a bool column", v)
		}
		d[i] = b
	case []string:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("cannot store %T in a string column", v)
		}
		d[i] = s
	case []float32:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		d[i] = float32(f)
	case []float64:
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		d[i] = f
	case []uint8:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		if n < 0 || n > math.MaxUint8 {
			return fmt.Errorf("value %d overflows uint8", n)
		}
		d[i] = uint8(n)
	case []uint32:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		if n < 0 || n > math.MaxUint32 {
			return fmt.Errorf("value %d overflows uint32", n)
		}
		d[i] = uint32(n)
	case []int32:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("value %d overflows int32", n)
		}
		d[i] = int32(n)
	case []int64:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		d[i] = n
	default:
		return fmt.Errorf("cannot store into an unallocated array")
	}
	return nil
}

// Window returns a copy of elements [lo, hi).
func (a Array) Window(lo, hi int) Array {
	if a.data == nil {
		return Array{}
	}
	out := NewArray(a.typ, hi-lo)
	reflect.Copy(reflect.ValueOf(out.data), reflect.ValueOf(a.data).Slice(lo, hi))
	return out
}

// CopyInto copies every element of a into dst starting at offset off.
func (a Array) CopyInto(dst Array, off int) error {
	if a.typ != dst.typ {
		return fmt.Errorf("cannot copy %s values into a %s array", a.typ, dst.typ)
	}
	if off < 0 || off+a.Len() > dst.Len() {
		return fmt.Errorf("copy of %d values at offset %d overflows array of length %d", a.Len(), off, dst.Len())
	}
	reflect.Copy(reflect.ValueOf(dst.data).Slice(off, off+a.Len()), reflect.ValueOf(a.data))
	return nil
}

// Equal reports whether a and b have the same type and elements.
func (a Array) Equal(b Array) bool {
	if a.typ != b.typ || a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	return reflect.DeepEqual(a.data, b.data)
}

func (a Array) String() string {
	return fmt.Sprintf("%s%v", a.typ, a.data)
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", n)
		}
		return int64(n), nil
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("cannot convert %T to an integer", v)
}

func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("value %v is not an integer", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("value %v overflows int64", f)
	}
	return int64(f), nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	}
	i, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %T to a float", v)
	}
	return float64(i), nil
}
