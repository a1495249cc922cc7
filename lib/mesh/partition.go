package mesh

/* partition.go splits a serial SimplexMesh into the per-rank slices a
distributed run would hand each process: owned cells first (core cells at the
front), then ghost copies of every foreign cell that shares a vertex with an
owned cell. */

import (
	"fmt"
	"sort"
)

// PartitionSimplexMesh returns rank's local slice of m under the given cell
// ownership map. owner[c] is the rank that owns global cell c. The returned
// mesh contains rank's owned cells in ascending global order with core cells
// first, followed by ghost copies of all foreign cells adjacent (through at
// least one shared vertex) to an owned cell, also in ascending global order.
// The second return value maps local cell ids back to global cell ids.
//
// A rank that owns no cells gets an empty, ghost-free mesh: with nothing
// local to be adjacent to, there is nothing to replicate either.
func PartitionSimplexMesh(m *SimplexMesh, owner []int, rank int) (*SimplexMesh, []int, error) {
	if len(owner) != len(m.cells) {
		return nil, nil, fmt.Errorf("The ownership map has %d entries, but the mesh has %d cells.", len(owner), len(m.cells))
	}
	if rank < 0 {
		return nil, nil, fmt.Errorf("Rank %d is negative.", rank)
	}
	for c, r := range owner {
		if r < 0 {
			return nil, nil, fmt.Errorf("Cell %d is owned by negative rank %d.", c, r)
		}
	}

	// Cells adjacent to each vertex, used both for finding ghosts and for
	// deciding which owned cells are core.
	vertCells := make([][]int, len(m.verts))
	for c, cell := range m.cells {
		for _, v := range cell {
			vertCells[v] = append(vertCells[v], c)
		}
	}

	ownedSet := map[int]bool{}
	for c, r := range owner {
		if r == rank {
			ownedSet[c] = true
		}
	}

	ghostSet := map[int]bool{}
	for c := range ownedSet {
		for _, v := range m.cells[c] {
			for _, nbr := range vertCells[v] {
				if !ownedSet[nbr] {
					ghostSet[nbr] = true
				}
			}
		}
	}

	// An owned cell is core when none of its vertices touch a foreign cell.
	core, boundary, ghosts := []int{}, []int{}, []int{}
	for c := range ownedSet {
		isCore := true
	VertLoop:
		for _, v := range m.cells[c] {
			for _, nbr := range vertCells[v] {
				if !ownedSet[nbr] {
					isCore = false
					break VertLoop
				}
			}
		}
		if isCore {
			core = append(core, c)
		} else {
			boundary = append(boundary, c)
		}
	}
	for c := range ghostSet {
		ghosts = append(ghosts, c)
	}
	sort.Ints(core)
	sort.Ints(boundary)
	sort.Ints(ghosts)

	localToGlobal := append(append(append([]int{}, core...), boundary...), ghosts...)

	// Remap vertices so the local mesh only stores what its cells touch.
	vertMap := map[int]int{}
	verts := [][]float64{}
	cells := make([][]int, len(localToGlobal))
	for lc, gc := range localToGlobal {
		cell := make([]int, len(m.cells[gc]))
		for i, v := range m.cells[gc] {
			lv, ok := vertMap[v]
			if !ok {
				lv = len(verts)
				vertMap[v] = lv
				verts = append(verts, m.verts[v])
			}
			cell[i] = lv
		}
		cells[lc] = cell
	}

	local, err := NewSimplexMesh(m.gdim, verts, cells)
	if err != nil {
		return nil, nil, err
	}
	local.core = len(core)
	local.owned = len(core) + len(boundary)

	return local, localToGlobal, nil
}
