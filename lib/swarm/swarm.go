/*package swarm builds point-cloud ("vertex-only") meshes: zero-dimensional
meshes whose cells are individual points immersed in a full-dimensional
parent mesh partition. Every process is given the same global coordinate
list; each process locates the points against its own partition and claims
exactly those that fall inside cells it owns. Because a ghost cell is always
a copy of a cell some other process owns, rejecting ghost hits makes the
global ownership partition exact with no communication at all.

The one collective operation is the sum-reduction behind global counts and
the optional validation checks; everything else is process-local.*/
package swarm

import (
	"fmt"
)

// ErrUnsupportedOp indicates a query that is meaningless on a
// zero-dimensional mesh, like cell-to-facet adjacency.
type ErrUnsupportedOp struct {
	Op string
}

func (e *ErrUnsupportedOp) Error() string {
	return fmt.Sprintf("%s is not defined on a point-cloud mesh", e.Op)
}

// Accept is the ownership rule: a point located in local cell `cell` belongs
// to this process exactly when the cell is owned rather than ghost, i.e.
// cell < owned for (_, owned, _) = CellCounts(). Applying this rule
// independently on every process gives each point exactly one global owner,
// because the owning process of any ghost cell's original also finds the
// point, in an owned cell, with no messages exchanged. A partition with
// zero owned cells accepts nothing.
func Accept(cell, owned int) bool {
	return cell >= 0 && cell < owned
}
