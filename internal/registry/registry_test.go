package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func local(name string) colid.ID { return colid.New(colid.LocalBuffer, name) }
func point(name string) colid.ID { return colid.New(colid.Point, name) }

func constSpec(deps ...colid.ID) *column.Spec {
	return &column.Spec{
		ElementType:  column.Float32,
		Arity:        1,
		Kind:         column.Point,
		Dependencies: deps,
		Strategy: column.Scalar{Fn: func(ec *column.EvaluationContext) (column.Array, error) {
			return column.ArrayOf[float32](1), nil
		}},
	}
}

func TestRegisterColumn(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and bumps the new column", func(t *testing.T) {
		m := New()
		spec := constSpec(point("weight"))

		require.NoError(t, m.RegisterColumn(ctx, local("doubled"), spec))

		assert.True(t, m.HasColumn(local("doubled")))
		assert.False(t, m.HasColumn(point("weight")), "raw dependencies are not registered")
		v, err := m.Version(local("doubled"))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), v)

		deps, err := m.Dependencies(local("doubled"))
		require.NoError(t, err)
		assert.Equal(t, []colid.ID{point("weight")}, deps)
	})

	t.Run("incomplete spec is a configuration error", func(t *testing.T) {
		m := New()
		spec := constSpec()
		spec.Arity = 0

		err := m.RegisterColumn(ctx, local("bad"), spec)

		var cfgErr *column.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, local("bad"), cfgErr.ID)
		assert.False(t, m.HasColumn(local("bad")))
	})

	t.Run("invalid identity is a configuration error", func(t *testing.T) {
		m := New()
		err := m.RegisterColumn(ctx, colid.ID{}, constSpec())

		var cfgErr *column.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		m := New()
		err := m.RegisterColumn(ctx, local("x"), constSpec(local("x")))

		var cycleErr *column.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.False(t, m.HasColumn(local("x")))
		nodes, edges := m.GraphSize()
		assert.Zero(t, nodes)
		assert.Zero(t, edges)
	})
}

func TestRegisterColumn_CycleRollsBack(t *testing.T) {
	ctx := context.Background()
	m := New()

	x := constSpec(local("y"))
	require.NoError(t, m.RegisterColumn(ctx, local("x"), x))
	nodesBefore, edgesBefore := m.GraphSize()
	versionBefore := x.Version()

	err := m.RegisterColumn(ctx, local("y"), constSpec(local("x")))

	var cycleErr *column.CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, local("y"), cycleErr.ID)
	assert.False(t, m.HasColumn(local("y")))
	assert.True(t, m.HasColumn(local("x")))
	assert.Equal(t, versionBefore, x.Version(), "a rejected registration bumps nothing")

	nodesAfter, edgesAfter := m.GraphSize()
	assert.Equal(t, nodesBefore, nodesAfter)
	assert.Equal(t, edgesBefore, edgesAfter)

	deps, err := m.Dependencies(local("y"))
	require.NoError(t, err)
	assert.Empty(t, deps, "y keeps no edges from the rejected spec")
}

func TestRegisterColumn_ReplacementKeepsDependents(t *testing.T) {
	ctx := context.Background()
	m := New()

	require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec(point("p"))))
	b := constSpec(local("a"))
	require.NoError(t, m.RegisterColumn(ctx, local("b"), b))
	assert.Equal(t, uint64(1), b.Version())

	replacement := constSpec(point("q"))
	require.NoError(t, m.RegisterColumn(ctx, local("a"), replacement))

	assert.Equal(t, uint64(1), replacement.Version())
	assert.Equal(t, uint64(2), b.Version(), "dependents are bumped on replacement")

	deps, err := m.Dependencies(local("a"))
	require.NoError(t, err)
	assert.Equal(t, []colid.ID{point("q")}, deps)

	dependents, err := m.Dependents(local("a"))
	require.NoError(t, err)
	assert.Equal(t, []colid.ID{local("b")}, dependents)

	_, err = m.Dependents(point("p"))
	assert.Error(t, err, "the orphaned raw node is pruned")
}

func TestRegisterColumn_ReplacementCycleKeepsOldSpec(t *testing.T) {
	ctx := context.Background()
	m := New()

	a := constSpec()
	require.NoError(t, m.RegisterColumn(ctx, local("a"), a))
	require.NoError(t, m.RegisterColumn(ctx, local("b"), constSpec(local("a"))))

	err := m.RegisterColumn(ctx, local("a"), constSpec(local("b")))
	require.Error(t, err)

	current, err := m.Spec(local("a"))
	require.NoError(t, err)
	assert.Same(t, a, current)
	deps, err := m.Dependencies(local("a"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestBumpVersionsOnDependents(t *testing.T) {
	ctx := context.Background()
	m := New()

	// a <- b, a <- c, {b, c} <- d
	specs := map[string]*column.Spec{
		"a": constSpec(point("raw")),
		"b": constSpec(local("a")),
		"c": constSpec(local("a")),
		"d": constSpec(local("b"), local("c")),
	}
	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, m.RegisterColumn(ctx, local(name), specs[name]))
	}
	before := map[string]uint64{}
	for name, s := range specs {
		before[name] = s.Version()
	}

	bumped := m.BumpVersionsOnDependents(ctx, local("a"))

	assert.ElementsMatch(t, []colid.ID{local("a"), local("b"), local("c"), local("d")}, bumped)
	for name, s := range specs {
		assert.Equal(t, before[name]+1, s.Version(), "column %s bumped exactly once", name)
	}

	t.Run("invalidating a raw column bumps what reads it", func(t *testing.T) {
		bumped := m.Invalidate(ctx, point("raw"))
		assert.Len(t, bumped, 4)
		assert.Equal(t, before["d"]+2, specs["d"].Version())
	})

	t.Run("unknown identity bumps nothing", func(t *testing.T) {
		assert.Empty(t, m.BumpVersionsOnDependents(ctx, local("missing")))
	})
}

func TestVersionMonotonicity(t *testing.T) {
	ctx := context.Background()
	m := New()
	require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec()))
	b := constSpec(local("a"))
	require.NoError(t, m.RegisterColumn(ctx, local("b"), b))
	unrelated := constSpec(point("raw"))
	require.NoError(t, m.RegisterColumn(ctx, local("unrelated"), unrelated))

	lastA, err := m.Version(local("a"))
	require.NoError(t, err)
	lastB := b.Version()
	unrelatedVersion := unrelated.Version()

	for i := 0; i < 5; i++ {
		require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec()))

		a, err := m.Version(local("a"))
		require.NoError(t, err)
		assert.Greater(t, a, lastA, "replacing a continues its version sequence")
		assert.Greater(t, b.Version(), lastB)
		assert.Equal(t, unrelatedVersion, unrelated.Version(), "unrelated columns keep their version")
		lastA, lastB = a, b.Version()
	}

	t.Run("lower baseline never decrements", func(t *testing.T) {
		high := constSpec()
		high.InitialVersion = 7
		require.NoError(t, m.RegisterColumn(ctx, local("c"), high))
		require.Equal(t, uint64(8), high.Version())

		low := constSpec()
		low.InitialVersion = 1
		require.NoError(t, m.RegisterColumn(ctx, local("c"), low))
		assert.Equal(t, uint64(9), low.Version())
	})

	t.Run("re-registering the same spec bumps once", func(t *testing.T) {
		same := constSpec()
		require.NoError(t, m.RegisterColumn(ctx, local("d"), same))
		require.NoError(t, m.RegisterColumn(ctx, local("d"), same))
		assert.Equal(t, uint64(2), same.Version())
	})
}

func TestRemoveColumn(t *testing.T) {
	ctx := context.Background()
	m := New()
	require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec(point("raw"))))
	require.NoError(t, m.RegisterColumn(ctx, local("b"), constSpec(local("a"))))

	err := m.RemoveColumn(ctx, local("a"))
	var violation *column.DependencyViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, []colid.ID{local("b")}, violation.Dependents)
	assert.True(t, m.HasColumn(local("a")))

	require.NoError(t, m.RemoveColumn(ctx, local("b")))
	require.NoError(t, m.RemoveColumn(ctx, local("a")))
	assert.Empty(t, m.ListActiveColumns())

	nodes, edges := m.GraphSize()
	assert.Zero(t, nodes)
	assert.Zero(t, edges)

	err = m.RemoveColumn(ctx, local("a"))
	var unknown *column.UnknownColumnError
	assert.True(t, errors.As(err, &unknown))
}

func TestLookups(t *testing.T) {
	ctx := context.Background()
	m := New()
	require.NoError(t, m.RegisterColumn(ctx, local("pointSizes"), constSpec()))
	require.NoError(t, m.RegisterColumn(ctx, local("edgeColors"), constSpec()))
	require.NoError(t, m.RegisterColumn(ctx, colid.New(colid.HostBuffer, "forwardsEdgeWeights"), constSpec()))

	assert.Equal(t, map[colid.ComponentClass][]string{
		colid.LocalBuffer: {"edgeColors", "pointSizes"},
		colid.HostBuffer:  {"forwardsEdgeWeights"},
	}, m.ListActiveColumns())

	_, err := m.Spec(local("nope"))
	var unknown *column.UnknownColumnError
	assert.ErrorAs(t, err, &unknown)
	_, err = m.Version(local("nope"))
	assert.ErrorAs(t, err, &unknown)

	infos := m.Describe()
	require.Len(t, infos, 3)
	for _, info := range infos {
		assert.Equal(t, "scalar", info.Strategy)
		assert.Equal(t, uint64(1), info.Version)
	}

	err = m.Read(func(v View) error {
		_, ok := v.Spec(local("edgeColors"))
		assert.True(t, ok)
		_, ok = v.Spec(local("nope"))
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestManager_Metrics(t *testing.T) {
	ctx := context.Background()
	promReg := prometheus.NewRegistry()
	m := New(WithObserver(metrics.New(promReg)))

	require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec()))
	require.NoError(t, m.RegisterColumn(ctx, local("a"), constSpec()))
	require.Error(t, m.RegisterColumn(ctx, local("a"), constSpec(local("a"))))
	require.NoError(t, m.RemoveColumn(ctx, local("a")))

	expected := `
# HELP colengine_registrations_total Column registrations by outcome
# TYPE colengine_registrations_total counter
colengine_registrations_total{outcome="cycle"} 1
colengine_registrations_total{outcome="registered"} 1
colengine_registrations_total{outcome="replaced"} 1
# HELP colengine_removals_total Columns removed from the registry
# TYPE colengine_removals_total counter
colengine_removals_total 1
`
	err := testutil.GatherAndCompare(promReg, strings.NewReader(expected),
		"colengine_registrations_total", "colengine_removals_total")
	assert.NoError(t, err)
}
