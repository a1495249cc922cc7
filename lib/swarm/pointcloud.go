package swarm

/* pointcloud.go contains the query surface of a constructed point cloud. */

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/phil-mansfield/swarm/lib/comm"
	"github.com/phil-mansfield/swarm/lib/fields"
	"github.com/phil-mansfield/swarm/lib/mesh"
)

// PointCloud is a zero-dimensional mesh whose cells are the points this
// process accepted during Build. The accepted points keep the order of the
// global input list; coordinates, parent cell ids, global indices, and all
// field arrays are indexed in that shared order. A PointCloud is immutable
// after construction except for field values, which are written only by the
// process that built it.
type PointCloud struct {
	parent mesh.Partition
	gdim   int

	coords [][]float64
	cells  []int
	global []int64

	accepted *roaring.Bitmap
	located  *roaring.Bitmap

	fields *fields.Store
}

// LocalCount returns the number of points this process accepted.
func (p *PointCloud) LocalCount() int { return len(p.cells) }

// GeometricDim returns the geometric dimension, which is always the parent
// mesh's.
func (p *PointCloud) GeometricDim() int { return p.gdim }

// TopologicalDim returns 0: every cell of a point cloud is a single point.
func (p *PointCloud) TopologicalDim() int { return 0 }

// Parent returns the partition the cloud was built against. The cloud does
// not own the partition.
func (p *PointCloud) Parent() mesh.Partition { return p.parent }

// Coordinates returns the accepted points' coordinates in construction
// order. The returned slices are the cloud's own storage and must not be
// modified.
func (p *PointCloud) Coordinates() [][]float64 { return p.coords }

// ParentCells returns, in the same order as Coordinates, the local id of
// the parent cell containing each point. Every entry is an owned cell:
// ghost hits never survive construction.
func (p *PointCloud) ParentCells() []int { return p.cells }

// GlobalIndices returns, in the same order as Coordinates, each point's
// position in the original global coordinate list.
func (p *PointCloud) GlobalIndices() []int64 { return p.global }

// GlobalCount returns the total number of accepted points across every rank
// of c. It is a blocking collective: every rank must call it together.
func (p *PointCloud) GlobalCount(c comm.Comm) int64 {
	return c.AllReduceInt64(int64(p.LocalCount()))
}

// Fields returns the cloud's field store.
func (p *PointCloud) Fields() *fields.Store { return p.fields }

// Field returns the named field, or fields.ErrUnknownField if no such field
// was requested at construction.
func (p *PointCloud) Field(name string) (*fields.Field, error) {
	return p.fields.Get(name)
}

// NumCells returns the local cell count, which equals LocalCount.
func (p *PointCloud) NumCells() int { return p.LocalCount() }

// NumEntities returns the number of local entities of the given dimension:
// the points themselves at dimension 0, and zero at every higher dimension.
// A point cloud has no edges, faces, or facets.
func (p *PointCloud) NumEntities(dim int) int {
	if dim == 0 {
		return p.LocalCount()
	}
	return 0
}

// CellToFacets always fails: cells of a zero-dimensional mesh have no
// facets to be adjacent to.
func (p *PointCloud) CellToFacets() ([][]int, error) {
	return nil, &ErrUnsupportedOp{Op: "cell-to-facet adjacency"}
}
