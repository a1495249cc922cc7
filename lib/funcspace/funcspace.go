/*package funcspace provides the one discrete function family a point-cloud
mesh supports: discontinuous, degree 0. Each accepted point is an
independent element carrying a single block of values, there are no shared
degrees of freedom between points, and global integration is the plain sum
of all point values across all ranks. Every other family/degree combination
is rejected at construction.*/
package funcspace

import (
	"fmt"

	"github.com/phil-mansfield/swarm/lib/comm"
	"github.com/phil-mansfield/swarm/lib/swarm"
)

// ErrUnsupportedElement indicates a family/degree combination other than
// ("DG", 0), none of which are meaningful on a zero-dimensional mesh.
type ErrUnsupportedElement struct {
	Family string
	Degree int
}

func (e *ErrUnsupportedElement) Error() string {
	return fmt.Sprintf("point-cloud meshes only support ('DG', 0) function spaces, not ('%s', %d)", e.Family, e.Degree)
}

// Space is a DG0 function space over a point cloud: one element per
// accepted point, each holding a fixed number of scalar components.
type Space struct {
	pc         *swarm.PointCloud
	components int
}

// New creates a scalar function space over pc. Only family "DG" with
// degree 0 is accepted.
func New(pc *swarm.PointCloud, family string, degree int) (*Space, error) {
	return newSpace(pc, family, degree, 1)
}

// NewVector creates a vector-valued function space over pc with one
// component per geometric dimension. Only family "DG" with degree 0 is
// accepted.
func NewVector(pc *swarm.PointCloud, family string, degree int) (*Space, error) {
	return newSpace(pc, family, degree, pc.GeometricDim())
}

func newSpace(pc *swarm.PointCloud, family string, degree, components int) (*Space, error) {
	if family != "DG" || degree != 0 {
		return nil, &ErrUnsupportedElement{Family: family, Degree: degree}
	}
	return &Space{pc: pc, components: components}, nil
}

// PointCloud returns the mesh the space is defined over.
func (s *Space) PointCloud() *swarm.PointCloud { return s.pc }

// Components returns the number of scalar components per point.
func (s *Space) Components() int { return s.components }

// Function is a member of a Space: one value block per accepted point, in
// the point cloud's construction order.
type Function struct {
	space *Space
	data  []float64
}

// NewFunction creates a zero-valued function in s.
func (s *Space) NewFunction() *Function {
	return &Function{
		space: s,
		data:  make([]float64, s.pc.LocalCount()*s.components),
	}
}

// Space returns the function's space.
func (f *Function) Space() *Space { return f.space }

// Data returns the flat value array, one block per local point.
func (f *Function) Data() []float64 { return f.data }

// At returns a mutable view of point i's value block.
func (f *Function) At(i int) []float64 {
	n := f.space.components
	return f.data[i*n : (i+1)*n]
}

// Interpolate point-evaluates g at every accepted coordinate. g must return
// exactly one value per component.
func (f *Function) Interpolate(g func(x []float64) []float64) error {
	for i, x := range f.space.pc.Coordinates() {
		v := g(x)
		if len(v) != f.space.components {
			return fmt.Errorf("The interpolated expression returned %d components, but the space has %d.", len(v), f.space.components)
		}
		copy(f.At(i), v)
	}
	return nil
}

// Project performs the Galerkin projection of g onto the space. For DG0
// elements over points the mass matrix is the identity, so projection and
// interpolation agree exactly.
func (f *Function) Project(g func(x []float64) []float64) error {
	return f.Interpolate(g)
}

// Assemble integrates f over the whole point cloud: the unit-weighted sum
// of every value on every rank. It is a blocking collective; all ranks must
// call it together.
func (f *Function) Assemble(c comm.Comm) float64 {
	local := 0.0
	for _, v := range f.data {
		local += v
	}
	return c.AllReduceFloat64(local)
}

// AssembleDot integrates the pointwise inner product of f and g, which must
// share a space. It is a blocking collective.
func (f *Function) AssembleDot(g *Function, c comm.Comm) (float64, error) {
	if f.space != g.space {
		return 0, fmt.Errorf("The two functions are defined on different spaces.")
	}
	local := 0.0
	for i := range f.data {
		local += f.data[i] * g.data[i]
	}
	return c.AllReduceFloat64(local), nil
}
