package column

import (
	"errors"
	"testing"

	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalarOne(ec *EvaluationContext) (Array, error) {
	return ArrayOf[float32](1), nil
}

func TestSpecValidate(t *testing.T) {
	id := colid.New(colid.LocalBuffer, "pointSizes")

	testCases := []struct {
		name   string
		spec   *Spec
		reason string
	}{
		{
			name: "complete scalar spec",
			spec: &Spec{ElementType: Float32, Arity: 1, Kind: Point, Strategy: Scalar{Fn: scalarOne}},
		},
		{
			name: "complete vectorized spec",
			spec: &Spec{ElementType: Uint32, Arity: 2, Kind: Edge, Strategy: Vectorized{
				Fn: func(ec *EvaluationContext, out Array) (Array, error) { return out, nil },
			}},
		},
		{name: "nil spec", spec: nil, reason: "spec is missing"},
		{
			name:   "missing element type",
			spec:   &Spec{Arity: 1, Kind: Point, Strategy: Scalar{Fn: scalarOne}},
			reason: "element type is missing",
		},
		{
			name:   "zero arity",
			spec:   &Spec{ElementType: Float32, Kind: Point, Strategy: Scalar{Fn: scalarOne}},
			reason: "arity must be at least 1",
		},
		{
			name:   "missing kind",
			spec:   &Spec{ElementType: Float32, Arity: 1, Strategy: Scalar{Fn: scalarOne}},
			reason: "component kind is missing",
		},
		{
			name:   "no strategy",
			spec:   &Spec{ElementType: Float32, Arity: 1, Kind: Point},
			reason: "no compute strategy",
		},
		{
			name:   "strategy without function",
			spec:   &Spec{ElementType: Float32, Arity: 1, Kind: Point, Strategy: Scalar{}},
			reason: "scalar strategy has no function",
		},
		{
			name: "malformed dependency",
			spec: &Spec{
				ElementType: Float32, Arity: 1, Kind: Point, Strategy: Scalar{Fn: scalarOne},
				Dependencies: []colid.ID{{Class: "point", Name: ""}},
			},
			reason: "dependency 0",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.spec.Validate(id)
			if tc.reason == "" {
				require.NoError(t, err)
				assert.True(t, tc.spec.IsCompletelyDefined())
				return
			}

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, id, cfgErr.ID)
			assert.Contains(t, cfgErr.Reason, tc.reason)
			if tc.spec != nil {
				assert.False(t, tc.spec.IsCompletelyDefined())
			}
		})
	}
}

func TestSpecVersion(t *testing.T) {
	s := &Spec{InitialVersion: 5}
	assert.Equal(t, uint64(5), s.Version())
	assert.Equal(t, uint64(6), s.BumpVersion())
	assert.Equal(t, uint64(7), s.BumpVersion())
	assert.Equal(t, uint64(7), s.Version())
}

func TestStrategyName(t *testing.T) {
	assert.Equal(t, "scalar", StrategyName(Scalar{}))
	assert.Equal(t, "vectorized", StrategyName(Vectorized{}))
	assert.Equal(t, "none", StrategyName(nil))
}

func TestParseTypes(t *testing.T) {
	typ, err := ParseElementType("Float32")
	require.NoError(t, err)
	assert.Equal(t, Float32, typ)

	typ, err = ParseElementType("double")
	require.NoError(t, err)
	assert.Equal(t, Float64, typ)

	_, err = ParseElementType("complex128")
	assert.Error(t, err)

	kind, err := ParseComponentKind("vertex")
	require.NoError(t, err)
	assert.Equal(t, Point, kind)

	_, err = ParseComponentKind("face")
	assert.Error(t, err)

	assert.Equal(t, 4, Uint32.Width())
	assert.Equal(t, 0, String.Width())
	assert.True(t, Int64.IsNumeric())
	assert.False(t, Bool.IsNumeric())
}

func TestErrorMessages(t *testing.T) {
	a := colid.New(colid.Edge, "weight")
	b := colid.New(colid.LocalBuffer, "doubled")

	dv := &DependencyViolationError{ID: a, Dependents: []colid.ID{b}}
	assert.Contains(t, dv.Error(), "localBuffer:doubled")

	cause := errors.New("boom")
	ce := &ComputationError{ID: b, Err: cause}
	assert.ErrorIs(t, ce, cause)

	cy := &CycleError{ID: a, Err: cause}
	assert.ErrorIs(t, cy, cause)

	assert.Contains(t, (&IndexError{ID: a, Index: 4, Count: 3}).Error(), "index 4")
	assert.Contains(t, (&UnknownColumnError{ID: a}).Error(), "edge:weight")
}

func TestNewSpecBaseline(t *testing.T) {
	deps := []colid.ID{colid.New(colid.Edge, "weight")}
	s := NewSpec(Float32, 1, Edge, deps, Scalar{Fn: scalarOne}, 7)

	require.True(t, s.IsCompletelyDefined())
	assert.False(t, s.Filterable)
	assert.Equal(t, deps, s.Dependencies)
	assert.Equal(t, uint64(7), s.Version())
	assert.Equal(t, uint64(8), s.BumpVersion())
	assert.Equal(t, uint64(8), s.Version())
}

func TestAdvanceTo(t *testing.T) {
	s := &Spec{InitialVersion: 2}
	s.AdvanceTo(5)
	assert.Equal(t, uint64(5), s.Version())
	s.AdvanceTo(3)
	assert.Equal(t, uint64(5), s.Version(), "never lowered")
	assert.Equal(t, uint64(6), s.BumpVersion())
}
