package locate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/swarm/lib/mesh"
)

func TestLocateInterval(t *testing.T) {
	m, err := mesh.NewUnitIntervalMesh(4)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	tests := []struct {
		x     float64
		cell  int
		found bool
	}{
		{0.125, 0, true},
		{0.375, 1, true},
		{0.625, 2, true},
		{0.875, 3, true},
		{0.0, 0, true},
		{1.0, 3, true},
		// A shared vertex resolves to the lower cell id.
		{0.25, 0, true},
		{0.5, 1, true},
		{-0.1, 0, false},
		{1.1, 0, false},
	}

	for i, test := range tests {
		cell, ok, err := loc.Locate([]float64{test.x})
		require.NoError(t, err, "case %d", i)
		assert.Equal(t, test.found, ok, "case %d: x = %g", i, test.x)
		if test.found {
			assert.Equal(t, test.cell, cell, "case %d: x = %g", i, test.x)
		}
	}
}

func TestLocateSquareMidpoints(t *testing.T) {
	m, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	// The centroid of each triangle must come back as that triangle.
	_, _, total := m.CellCounts()
	for c := 0; c < total; c++ {
		cell, ok, err := loc.Locate(mesh.Centroid(m, c))
		require.NoError(t, err)
		require.True(t, ok, "centroid of cell %d was not found", c)
		assert.Equal(t, c, cell, "centroid of cell %d", c)
	}
}

func TestLocateTieBreak(t *testing.T) {
	m, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	// Points on the shared diagonal are inside both triangles; the search
	// must deterministically pick cell 0.
	for _, x := range []float64{0.25, 0.5, 0.75} {
		cell, ok, err := loc.Locate([]float64{x, x})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, cell, "diagonal point (%g, %g)", x, x)
	}
}

func TestLocateIdempotent(t *testing.T) {
	m, err := mesh.NewUnitSquareMesh(2, 2)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 50; i++ {
		x := []float64{rng.Float64(), rng.Float64()}
		cell1, ok1, err := loc.Locate(x)
		require.NoError(t, err)
		cell2, ok2, err := loc.Locate(x)
		require.NoError(t, err)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, cell1, cell2)
	}
}

func TestLocateCube(t *testing.T) {
	m, err := mesh.NewUnitCubeMesh(1, 1, 1)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	// Tetrahedron centroids land in their own cells.
	_, _, total := m.CellCounts()
	for c := 0; c < total; c++ {
		cell, ok, err := loc.Locate(mesh.Centroid(m, c))
		require.NoError(t, err)
		require.True(t, ok, "centroid of cell %d was not found", c)
		assert.Equal(t, c, cell, "centroid of cell %d", c)
	}

	// The six tetrahedra tile the cube: every interior point must be found.
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		x := []float64{rng.Float64(), rng.Float64(), rng.Float64()}
		_, ok, err := loc.Locate(x)
		require.NoError(t, err)
		assert.True(t, ok, "interior point %v was not found", x)
	}

	// Points outside the cube are not.
	outside := [][]float64{
		{-0.1, 0.5, 0.5}, {0.5, 1.2, 0.5}, {0.5, 0.5, -3},
	}
	for _, x := range outside {
		_, ok, err := loc.Locate(x)
		require.NoError(t, err)
		assert.False(t, ok, "exterior point %v was found", x)
	}
}

func TestLocateDimensionMismatch(t *testing.T) {
	m, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	loc, err := New(m)
	require.NoError(t, err)

	_, _, err = loc.Locate([]float64{0.5})
	var dimErr *ErrDimensionMismatch
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)

	_, _, err = loc.Locate([]float64{0.5, 0.5, 0.5})
	require.ErrorAs(t, err, &dimErr)
}

func TestLocateUnsupportedTopology(t *testing.T) {
	base, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	extruded, err := mesh.NewExtrudedMesh(base, 1)
	require.NoError(t, err)

	_, err = New(extruded)
	var topoErr *mesh.ErrUnsupportedTopology
	require.ErrorAs(t, err, &topoErr)
	assert.Equal(t, mesh.Extruded, topoErr.Kind)
}

func TestLocateGhostCells(t *testing.T) {
	// The locator searches ghost cells too: exclusion of ghost hits is the
	// ownership classifier's job, not the locator's.
	m, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	local, l2g, err := mesh.PartitionSimplexMesh(m, []int{0, 1}, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, l2g)

	loc, err := New(local)
	require.NoError(t, err)
	cell, ok, err := loc.Locate(mesh.Centroid(m, 1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, cell, "the ghost copy of global cell 1")
}

func TestNewEpsRejectsNegative(t *testing.T) {
	m, err := mesh.NewUnitSquareMesh(1, 1)
	require.NoError(t, err)
	_, err = NewEps(m, -1e-10)
	assert.Error(t, err)
}
