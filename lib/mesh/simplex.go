package mesh

/* simplex.go contains SimplexMesh, a concrete simplicial Partition, along
with constructors for the unit meshes used throughout the tests. */

import (
	"fmt"
)

// SimplexMesh is a mesh whose cells are simplices: segments in 1D, triangles
// in 2D, and tetrahedra in 3D. A serial SimplexMesh owns all of its cells;
// distributed slices with ghost cells are created by PartitionSimplexMesh.
type SimplexMesh struct {
	gdim        int
	verts       [][]float64
	cells       [][]int
	core, owned int
}

// NewSimplexMesh creates a mesh with the given vertex coordinates and cells.
// Each cell must list gdim+1 vertex indices. The resulting mesh is serial:
// every cell is core and owned.
func NewSimplexMesh(gdim int, verts [][]float64, cells [][]int) (*SimplexMesh, error) {
	if gdim < 1 || gdim > 3 {
		return nil, fmt.Errorf("Simplex meshes must have a dimension of 1, 2, or 3, not %d.", gdim)
	}
	for i, v := range verts {
		if len(v) != gdim {
			return nil, fmt.Errorf("Vertex %d has %d components, but the mesh dimension is %d.", i, len(v), gdim)
		}
	}
	for c, cell := range cells {
		if len(cell) != gdim+1 {
			return nil, fmt.Errorf("Cell %d has %d vertices, but a %d-dimensional simplex needs %d.", c, len(cell), gdim, gdim+1)
		}
		for _, v := range cell {
			if v < 0 || v >= len(verts) {
				return nil, fmt.Errorf("Cell %d references vertex %d, but the mesh only has %d vertices.", c, v, len(verts))
			}
		}
	}

	return &SimplexMesh{
		gdim: gdim, verts: verts, cells: cells,
		core: len(cells), owned: len(cells),
	}, nil
}

func (m *SimplexMesh) GeometricDim() int   { return m.gdim }
func (m *SimplexMesh) TopologicalDim() int { return m.gdim }

func (m *SimplexMesh) Kind() Kind {
	switch m.gdim {
	case 1:
		return Interval
	case 2:
		return Triangle
	}
	return Tetrahedron
}

func (m *SimplexMesh) CellCounts() (core, owned, total int) {
	return m.core, m.owned, len(m.cells)
}

func (m *SimplexMesh) Corners(cell int) [][]float64 {
	idx := m.cells[cell]
	corners := make([][]float64, len(idx))
	for i, v := range idx {
		corners[i] = m.verts[v]
	}
	return corners
}

// NumVertices returns the number of vertices referenced by local cells.
func (m *SimplexMesh) NumVertices() int { return len(m.verts) }

// NewUnitIntervalMesh creates a 1D mesh of n equal segments covering [0, 1].
func NewUnitIntervalMesh(n int) (*SimplexMesh, error) {
	if n < 1 {
		return nil, fmt.Errorf("A unit interval mesh needs at least 1 cell, not %d.", n)
	}

	verts := make([][]float64, n+1)
	for i := range verts {
		verts[i] = []float64{float64(i) / float64(n)}
	}
	cells := make([][]int, n)
	for i := range cells {
		cells[i] = []int{i, i + 1}
	}

	return NewSimplexMesh(1, verts, cells)
}

// NewUnitSquareMesh creates a 2D triangular mesh covering [0, 1]^2 with
// nx * ny quads, each split into two triangles along its main diagonal.
func NewUnitSquareMesh(nx, ny int) (*SimplexMesh, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("A unit square mesh needs at least 1x1 cells, not %dx%d.", nx, ny)
	}

	verts := make([][]float64, (nx+1)*(ny+1))
	idx := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			verts[idx(i, j)] = []float64{
				float64(i) / float64(nx), float64(j) / float64(ny),
			}
		}
	}

	cells := [][]int{}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v00, v10 := idx(i, j), idx(i+1, j)
			v01, v11 := idx(i, j+1), idx(i+1, j+1)
			cells = append(cells, []int{v00, v10, v11})
			cells = append(cells, []int{v00, v11, v01})
		}
	}

	return NewSimplexMesh(2, verts, cells)
}

// kuhnPerms are the six orderings of the axes used to split a hex into
// tetrahedra: each permutation gives the path of axis steps taken from the
// low corner of the hex to the high corner.
var kuhnPerms = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// NewUnitCubeMesh creates a 3D tetrahedral mesh covering [0, 1]^3 with
// nx * ny * nz hexes, each split into six tetrahedra (the Kuhn
// triangulation, which tiles space consistently across hex boundaries).
func NewUnitCubeMesh(nx, ny, nz int) (*SimplexMesh, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("A unit cube mesh needs at least 1x1x1 cells, not %dx%dx%d.", nx, ny, nz)
	}

	verts := make([][]float64, (nx+1)*(ny+1)*(nz+1))
	idx := func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				verts[idx(i, j, k)] = []float64{
					float64(i) / float64(nx),
					float64(j) / float64(ny),
					float64(k) / float64(nz),
				}
			}
		}
	}

	cells := [][]int{}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for _, perm := range kuhnPerms {
					step := [3]int{i, j, k}
					tet := []int{idx(step[0], step[1], step[2])}
					for _, axis := range perm {
						step[axis]++
						tet = append(tet, idx(step[0], step[1], step[2]))
					}
					cells = append(cells, tet)
				}
			}
		}
	}

	return NewSimplexMesh(3, verts, cells)
}
