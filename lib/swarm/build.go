package swarm

/* build.go contains the construction pass: locate every coordinate of the
replicated global list against the local partition, keep the ones this
process owns, and size the field store to match. */

import (
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/swarm/lib/fields"
	"github.com/phil-mansfield/swarm/lib/locate"
	"github.com/phil-mansfield/swarm/lib/mesh"
)

// Config adjusts construction. The zero value gives the defaults.
type Config struct {
	// Eps is the containment tolerance handed to the locator. Zero means
	// locate.Eps. Every process must use the same value, or points near
	// partition boundaries can be claimed twice or not at all.
	Eps float64
	// Workers is the number of goroutines the locate pass is split over.
	// Zero means GOMAXPROCS. The accepted-point order does not depend on
	// Workers.
	Workers int
}

// Build creates the point cloud owned by this process from the global
// coordinate list. coords must be identical, bitwise, on every process of
// the parent mesh's communicator; this is a caller contract (checkable with
// CheckReplicated), not something Build can verify alone. Each requested
// field is allocated with one zeroed block per accepted point.
//
// Build fails, before any location work and without observable side
// effects, when the parent topology has no point location
// (mesh.ErrUnsupportedTopology), a coordinate row's width is not the
// parent's geometric dimension (locate.ErrDimensionMismatch), or the field
// specs are invalid (fields.ErrDuplicateField among others).
//
// Coordinates that lie outside the local partition, or inside only ghost
// cells, are silently skipped: on most processes that is the fate of most
// points, and the process owning the containing cell picks them up.
func Build(m mesh.Partition, coords [][]float64, specs []fields.Spec) (*PointCloud, error) {
	return BuildConfig(m, coords, specs, &Config{})
}

// BuildConfig is Build with explicit configuration.
func BuildConfig(m mesh.Partition, coords [][]float64, specs []fields.Spec, cfg *Config) (*PointCloud, error) {
	eps := cfg.Eps
	if eps == 0 {
		eps = locate.Eps
	}
	loc, err := locate.NewEps(m, eps)
	if err != nil {
		return nil, err
	}

	gdim := m.GeometricDim()
	for _, x := range coords {
		if len(x) != gdim {
			return nil, &locate.ErrDimensionMismatch{Expected: gdim, Got: len(x)}
		}
	}
	// Validate the field specs before the per-point pass so a bad spec
	// costs O(1).
	if _, err := fields.NewStore(0, specs); err != nil {
		return nil, err
	}

	cells, found, err := locateAll(loc, coords, cfg.Workers)
	if err != nil {
		return nil, err
	}

	// The accept pass runs in global index order, so the accepted points
	// form a stable subsequence of the input list.
	_, owned, _ := m.CellCounts()
	pc := &PointCloud{
		parent:   m,
		gdim:     gdim,
		accepted: roaring.New(),
		located:  roaring.New(),
	}
	for i := range coords {
		if !found[i] {
			continue
		}
		pc.located.Add(uint32(i))
		if !Accept(cells[i], owned) {
			continue
		}
		pc.accepted.Add(uint32(i))
		pc.coords = append(pc.coords, append([]float64{}, coords[i]...))
		pc.cells = append(pc.cells, cells[i])
		pc.global = append(pc.global, int64(i))
	}

	pc.fields, err = fields.NewStore(len(pc.cells), specs)
	if err != nil {
		return nil, err
	}
	return pc, nil
}

// locateAll runs the locator over every coordinate, striped across workers.
// Results land in index-parallel slices, so the stripes never contend and
// the caller sees the same ordering regardless of worker count.
func locateAll(loc *locate.Locator, coords [][]float64, workers int) (cells []int, found []bool, err error) {
	cells = make([]int, len(coords))
	found = make([]bool, len(coords))

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(coords) {
		workers = len(coords)
	}
	if workers <= 1 {
		for i := range coords {
			cells[i], found[i], err = loc.Locate(coords[i])
			if err != nil {
				return nil, nil, err
			}
		}
		return cells, found, nil
	}

	eg := new(errgroup.Group)
	for w := 0; w < workers; w++ {
		start := w * len(coords) / workers
		end := (w + 1) * len(coords) / workers
		eg.Go(func() error {
			for i := start; i < end; i++ {
				c, ok, err := loc.Locate(coords[i])
				if err != nil {
					return err
				}
				cells[i], found[i] = c, ok
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return cells, found, nil
}
