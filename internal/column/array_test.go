package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArray(t *testing.T) {
	for typ := range elementTypeNames {
		a := NewArray(typ, 3)
		assert.Equal(t, typ, a.Type())
		assert.Equal(t, 3, a.Len())
		assert.False(t, a.IsZero())
	}

	empty := NewArray(InvalidType, 3)
	assert.True(t, empty.IsZero())
	assert.Equal(t, 0, empty.Len())
}

func TestArrayOfAndValues(t *testing.T) {
	a := ArrayOf[float32](1, 2, 3)
	assert.Equal(t, Float32, a.Type())

	vals, ok := Values[float32](a)
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3}, vals)

	_, ok = Values[uint32](a)
	assert.False(t, ok)

	s := ArrayOf("a", "b")
	assert.Equal(t, String, s.Type())
	assert.Equal(t, "b", s.At(1))
}

func TestArraySet(t *testing.T) {
	testCases := []struct {
		name      string
		typ       ElementType
		value     any
		expected  any
		expectErr bool
	}{
		{name: "int into uint32", typ: Uint32, value: 7, expected: uint32(7)},
		{name: "integral float into uint8", typ: Uint8, value: 200.0, expected: uint8(200)},
		{name: "int into float32", typ: Float32, value: 3, expected: float32(3)},
		{name: "float64 into float64", typ: Float64, value: 2.5, expected: 2.5},
		{name: "int64 into int32", typ: Int32, value: int64(-4), expected: int32(-4)},
		{name: "bool into bool", typ: Bool, value: true, expected: true},
		{name: "string into string", typ: String, value: "x", expected: "x"},
		{name: "error - negative into uint32", typ: Uint32, value: -1, expectErr: true},
		{name: "error - overflow uint8", typ: Uint8, value: 256, expectErr: true},
		{name: "error - fractional into int64", typ: Int64, value: 1.5, expectErr: true},
		{name: "error - string into float", typ: Float64, value: "1", expectErr: true},
		{name: "error - number into bool", typ: Bool, value: 1, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewArray(tc.typ, 1)
			err := a.Set(0, tc.value)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, a.At(0))
		})
	}

	t.Run("error - out of range", func(t *testing.T) {
		a := NewArray(Uint32, 1)
		assert.Error(t, a.Set(1, 1))
		assert.Error(t, a.Set(-1, 1))
	})
}

func TestArrayWindowAndCopy(t *testing.T) {
	a := ArrayOf[uint32](10, 11, 20, 21, 30, 31)

	w := a.Window(2, 4)
	assert.True(t, ArrayOf[uint32](20, 21).Equal(w))

	// Window is a copy.
	require.NoError(t, w.Set(0, 99))
	assert.Equal(t, uint32(20), a.At(2))

	dst := NewArray(Uint32, 4)
	require.NoError(t, w.CopyInto(dst, 2))
	assert.True(t, ArrayOf[uint32](0, 0, 99, 21).Equal(dst))

	assert.Error(t, w.CopyInto(dst, 3), "overflow must be rejected")
	assert.Error(t, ArrayOf[float32](1).CopyInto(dst, 0), "type mismatch must be rejected")
}

func TestArrayFloat64(t *testing.T) {
	f, ok := ArrayOf[int32](-3).Float64(0)
	require.True(t, ok)
	assert.Equal(t, -3.0, f)

	_, ok = ArrayOf("x").Float64(0)
	assert.False(t, ok)
}

func TestArrayEqual(t *testing.T) {
	assert.True(t, ArrayOf[float32]().Equal(NewArray(Float32, 0)))
	assert.False(t, ArrayOf[float32](1).Equal(ArrayOf[float64](1)))
	assert.False(t, ArrayOf[float32](1).Equal(ArrayOf[float32](2)))
}
