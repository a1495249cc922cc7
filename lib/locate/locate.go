/*package locate finds the local cell of a mesh partition containing a given
coordinate. The search is a pure query over the partition's geometry: it has
no side effects, and repeated calls with the same coordinate always return
the same cell.*/
package locate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/swarm/lib/mesh"
)

// Eps is the default containment tolerance. A point whose barycentric
// coordinates are within Eps of a cell is treated as inside it, so points
// sitting exactly on a cell boundary are found rather than lost to floating
// point noise. A point on a facet shared by two local cells is resolved to
// the lower cell id.
const Eps = 1e-12

// ErrDimensionMismatch indicates a coordinate whose width does not match the
// mesh's geometric dimension.
type ErrDimensionMismatch struct {
	Expected, Got int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("coordinate has %d components, but the mesh dimension is %d", e.Got, e.Expected)
}

// Locator performs point-in-cell searches against a single mesh partition.
// The partition is read-only during the Locator's lifetime.
type Locator struct {
	m   mesh.Partition
	eps float64
}

// New creates a Locator over m using the default tolerance Eps. It fails
// with mesh.ErrUnsupportedTopology if m's topology kind has no point
// location implemented, so unsupported meshes are rejected before any
// per-point work.
func New(m mesh.Partition) (*Locator, error) { return NewEps(m, Eps) }

// NewEps is New with an explicit containment tolerance. For ownership to
// stay consistent across processes, every process must use the same
// tolerance.
func NewEps(m mesh.Partition, eps float64) (*Locator, error) {
	switch m.Kind() {
	case mesh.Interval, mesh.Triangle, mesh.Tetrahedron:
	default:
		return nil, &mesh.ErrUnsupportedTopology{Kind: m.Kind(), Op: "point location"}
	}
	if eps < 0 {
		return nil, fmt.Errorf("Containment tolerance %g is negative.", eps)
	}
	return &Locator{m: m, eps: eps}, nil
}

// Mesh returns the partition this Locator searches.
func (l *Locator) Mesh() mesh.Partition { return l.m }

// Eps returns the containment tolerance in use.
func (l *Locator) Eps() float64 { return l.eps }

// Locate returns the id of the local cell containing coord, searching core,
// owned, and ghost cells alike. ok is false when no local cell contains the
// point; this is not an error, it is the normal result for most points on
// most processes in a distributed run. When more than one cell contains the
// point (a point exactly on a shared facet), the lowest cell id wins:
// cells are scanned in ascending order and the first hit is returned.
func (l *Locator) Locate(coord []float64) (cell int, ok bool, err error) {
	if len(coord) != l.m.GeometricDim() {
		return 0, false, &ErrDimensionMismatch{
			Expected: l.m.GeometricDim(), Got: len(coord),
		}
	}

	_, _, total := l.m.CellCounts()
	for c := 0; c < total; c++ {
		if contains(l.m.Corners(c), coord, l.eps) {
			return c, true, nil
		}
	}
	return 0, false, nil
}

// contains reports whether the simplex with the given corners contains p to
// within eps in barycentric coordinates.
func contains(corners [][]float64, p []float64, eps float64) bool {
	d := len(p)
	if d == 1 {
		lo, hi := corners[0][0], corners[1][0]
		if lo > hi {
			lo, hi = hi, lo
		}
		span := hi - lo
		return p[0] >= lo-eps*span && p[0] <= hi+eps*span
	}

	// Solve A*lambda = p - v0 where the columns of A are the edge vectors
	// from corner 0. The point is inside iff every barycentric coordinate
	// lambda_i and the remainder 1 - sum(lambda) are non-negative.
	a := mat.NewDense(d, d, nil)
	b := mat.NewVecDense(d, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			a.Set(i, j, corners[j+1][i]-corners[0][i])
		}
		b.SetVec(i, p[i]-corners[0][i])
	}

	var lu mat.LU
	lu.Factorize(a)
	lambda := mat.NewVecDense(d, nil)
	if err := lu.SolveVecTo(lambda, false, b); err != nil {
		if _, nearSingular := err.(mat.Condition); !nearSingular {
			// A degenerate (zero-volume) cell contains nothing.
			return false
		}
	}

	sum := 0.0
	for i := 0; i < d; i++ {
		if lambda.AtVec(i) < -eps {
			return false
		}
		sum += lambda.AtVec(i)
	}
	return sum <= 1+eps
}
