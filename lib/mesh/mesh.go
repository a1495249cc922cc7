/*package mesh describes the process-local slice of a distributed parent mesh
that point clouds are built against. The central type is the Partition
interface, which reports cell ownership classes and hands out cell geometry.
Concrete simplicial meshes and a test-oriented partitioner live in this
package as well.*/
package mesh

// Kind is a closed enumeration of the parent mesh topologies this library
// knows about. Support for an operation is always decided by switching over
// Kind, never by probing at call time, so unsupported topologies fail during
// construction.
type Kind int

const (
	// Interval is a 1D mesh of line segments.
	Interval Kind = iota
	// Triangle is a 2D mesh of triangles.
	Triangle
	// Tetrahedron is a 3D mesh of tetrahedra.
	Tetrahedron
	// Extruded is a layered mesh built on top of another mesh. Point
	// location is not implemented for extruded meshes.
	Extruded
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case Interval:
		return "interval"
	case Triangle:
		return "triangle"
	case Tetrahedron:
		return "tetrahedron"
	case Extruded:
		return "extruded"
	}
	return "unknown"
}

// Partition is one process's share of a distributed mesh. Local cells are
// classified into three nested groups: "core" cells that can be worked on
// without any halo data, "owned" cells for which this process is the unique
// global owner, and "ghost" cells, which are read-only copies of cells owned
// by a neighboring process and exist only so local searches can see across
// the partition boundary.
//
// Cells are indexed so that the first core cells come first, the remaining
// owned cells follow, and ghost cells come last: a cell c is owned exactly
// when c < owned for (core, owned, total) = CellCounts().
type Partition interface {
	// GeometricDim returns the number of components in a vertex coordinate.
	GeometricDim() int
	// TopologicalDim returns the dimension of the mesh's cells.
	TopologicalDim() int
	// Kind returns the topology kind of the mesh.
	Kind() Kind
	// CellCounts returns the sizes of the nested cell groups. The invariant
	// core <= owned <= total always holds.
	CellCounts() (core, owned, total int)
	// Corners returns the corner coordinates of a local cell. The returned
	// slices alias the mesh's vertex storage and must not be modified.
	Corners(cell int) [][]float64
}

// Centroid returns the centroid of a local cell of m.
func Centroid(m Partition, cell int) []float64 {
	corners := m.Corners(cell)
	x := make([]float64, m.GeometricDim())
	for _, c := range corners {
		for d := range x {
			x[d] += c[d]
		}
	}
	for d := range x {
		x[d] /= float64(len(corners))
	}
	return x
}
