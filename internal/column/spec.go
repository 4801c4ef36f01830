package column

import (
	"fmt"
	"sync/atomic"

	"github.com/specialistvlad/colengine/internal/colid"
)

// EvaluationContext is the single argument handed to a compute strategy.
type EvaluationContext struct {
	// ID is the column being computed.
	ID colid.ID
	// Deps holds one resolved value per declared dependency, in order. For a
	// vectorized call these are full dense arrays; for a scalar call they are
	// the per-component windows at Index.
	Deps []Array
	// Index is the component being computed, or -1 for a vectorized call.
	Index int
	// Count is the number of components of the column's kind.
	Count int
}

// VectorizedFunc fills every element of out. It may return out itself, a
// different array of the same length, or the zero Array to mean "use out".
type VectorizedFunc func(ec *EvaluationContext, out Array) (Array, error)

// ScalarFunc computes the Arity values of the component at ec.Index.
type ScalarFunc func(ec *EvaluationContext) (Array, error)

// Strategy is either Vectorized or Scalar.
type Strategy interface {
	strategy()
}

// Vectorized computes a whole dense column in one call.
type Vectorized struct {
	Fn VectorizedFunc
}

// Scalar computes one component at a time.
type Scalar struct {
	Fn ScalarFunc
}

func (Vectorized) strategy() {}
func (Scalar) strategy()     {}

// StrategyName is used in logs and metric labels.
func StrategyName(s Strategy) string {
	switch s.(type) {
	case Vectorized:
		return "vectorized"
	case Scalar:
		return "scalar"
	}
	return "none"
}

// Spec describes one derived column. Apart from the version counter a Spec
// must not be modified once it has been registered.
type Spec struct {
	ElementType  ElementType
	Arity        int
	Kind         ComponentKind
	Filterable   bool
	Dependencies []colid.ID
	Strategy     Strategy

	// InitialVersion is the baseline the version counter starts from.
	InitialVersion uint64

	bumps atomic.Uint64
}

// NewSpec builds a non-filterable spec whose version starts at baseline.
func NewSpec(t ElementType, arity int, kind ComponentKind, deps []colid.ID, strategy Strategy, baseline uint64) *Spec {
	return &Spec{
		ElementType:    t,
		Arity:          arity,
		Kind:           kind,
		Dependencies:   deps,
		Strategy:       strategy,
		InitialVersion: baseline,
	}
}

// Version returns the current version of the spec.
func (s *Spec) Version() uint64 {
	return s.InitialVersion + s.bumps.Load()
}

// BumpVersion increments the version by one and returns the new value.
func (s *Spec) BumpVersion() uint64 {
	return s.InitialVersion + s.bumps.Add(1)
}

// AdvanceTo raises the version to at least v. It never lowers it.
func (s *Spec) AdvanceTo(v uint64) {
	for {
		bumps := s.bumps.Load()
		current := s.InitialVersion + bumps
		if current >= v {
			return
		}
		if s.bumps.CompareAndSwap(bumps, bumps+(v-current)) {
			return
		}
	}
}

// Validate checks that the spec is completely defined. The returned error is
// a *ConfigurationError naming id.
func (s *Spec) Validate(id colid.ID) error {
	fail := func(format string, args ...any) error {
		return &ConfigurationError{ID: id, Reason: fmt.Sprintf(format, args...)}
	}
	if s == nil {
		return fail("spec is missing")
	}
	if !s.ElementType.Valid() {
		return fail("element type is missing")
	}
	if s.Arity < 1 {
		return fail("arity must be at least 1, got %d", s.Arity)
	}
	if !s.Kind.Valid() {
		return fail("component kind is missing")
	}
	switch st := s.Strategy.(type) {
	case Vectorized:
		if st.Fn == nil {
			return fail("vectorized strategy has no function")
		}
	case Scalar:
		if st.Fn == nil {
			return fail("scalar strategy has no function")
		}
	case nil:
		return fail("no compute strategy")
	default:
		return fail("unsupported strategy %T", st)
	}
	for i, dep := range s.Dependencies {
		if err := dep.Validate(); err != nil {
			return fail("dependency %d: %v", i, err)
		}
	}
	return nil
}

// IsCompletelyDefined reports whether Validate would succeed.
func (s *Spec) IsCompletelyDefined() bool {
	return s.Validate(colid.ID{}) == nil
}
