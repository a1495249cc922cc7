package swarm

/* check.go contains the optional collective validation of a constructed
point cloud. Construction itself never communicates; these checks exist for
debugging runs that are suspected of breaking the replicated-input contract
or of losing points to degenerate geometry at partition boundaries. Each
check is a blocking collective and must be called on every rank together. */

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"log"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/phil-mansfield/swarm/lib/comm"
)

// crc32cTable is the Castagnoli polynomial, precomputed once.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CoordChecksum returns a CRC32-Castagnoli checksum over the exact bit
// patterns of the coordinate list. Two ranks get the same checksum exactly
// when their lists are bitwise identical, which is what ownership
// consistency requires: values that merely compare equal after rounding are
// not good enough.
func CoordChecksum(coords [][]float64) uint32 {
	h := crc32.New(crc32cTable)
	buf := make([]byte, 8)
	for _, x := range coords {
		binary.LittleEndian.PutUint64(buf, uint64(len(x)))
		h.Write(buf)
		for _, v := range x {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
			h.Write(buf)
		}
	}
	return h.Sum32()
}

// CheckReplicated verifies the construction contract that every rank was
// handed a bitwise-identical global coordinate list. It returns an error on
// every rank if any pair of ranks disagrees.
func CheckReplicated(coords [][]float64, c comm.Comm) error {
	sums := c.AllGatherInt64(int64(CoordChecksum(coords)))
	for r := range sums {
		if sums[r] != sums[0] {
			return fmt.Errorf("The global coordinate list differs between ranks: rank 0 has checksum %08x, but rank %d has %08x.", uint32(sums[0]), r, uint32(sums[r]))
		}
	}
	return nil
}

// Report is the result of Check: the global accounting of which input
// indices ended up where.
type Report struct {
	// GlobalCount is the total number of accepted points over all ranks.
	GlobalCount int64
	// Duplicates lists global indices accepted by more than one rank. A
	// non-empty list means the ownership rule was broken, which only
	// happens when the ranks' inputs or tolerances differ.
	Duplicates []uint32
	// Orphans lists global indices that some rank located inside a ghost
	// cell but that no rank accepted. This is a numerically degenerate
	// case (e.g. a point exactly on a non-manifold piece of the partition
	// boundary); out-of-domain points never appear here.
	Orphans []uint32
}

// Check gathers every rank's ownership bitmaps and returns the same Report
// on every rank. Orphaned points are reported, and logged, but are not an
// error: the source of truth for the structure treats them as dropped. Use
// CheckStrict to escalate instead.
func Check(p *PointCloud, c comm.Comm) (*Report, error) {
	accepted, err := gatherBitmaps(p.accepted, c)
	if err != nil {
		return nil, err
	}
	located, err := gatherBitmaps(p.located, c)
	if err != nil {
		return nil, err
	}

	unionA, dup := roaring.New(), roaring.New()
	for _, rb := range accepted {
		overlap := rb.Clone()
		overlap.And(unionA)
		dup.Or(overlap)
		unionA.Or(rb)
	}
	unionL := roaring.New()
	for _, rb := range located {
		unionL.Or(rb)
	}
	orphans := unionL.Clone()
	orphans.AndNot(unionA)

	report := &Report{
		GlobalCount: p.GlobalCount(c),
		Duplicates:  dup.ToArray(),
		Orphans:     orphans.ToArray(),
	}
	if len(report.Orphans) > 0 && c.Rank() == 0 {
		log.Printf("swarm: %d input points were located only in ghost cells and were dropped by every rank", len(report.Orphans))
	}
	return report, nil
}

// CheckStrict is Check, escalated: duplicate claims and orphaned points
// both become errors.
func CheckStrict(p *PointCloud, c comm.Comm) (*Report, error) {
	report, err := Check(p, c)
	if err != nil {
		return nil, err
	}
	if n := len(report.Duplicates); n > 0 {
		return report, fmt.Errorf("%d input points were accepted by more than one rank. The ranks' coordinate lists or tolerances must differ.", n)
	}
	if n := len(report.Orphans); n > 0 {
		return report, fmt.Errorf("%d input points were located only in ghost cells and accepted by no rank.", n)
	}
	return report, nil
}

// gatherBitmaps all-gathers one bitmap per rank. Every rank computes the
// same result, so the analysis after the gather needs no further
// communication.
func gatherBitmaps(bm *roaring.Bitmap, c comm.Comm) ([]*roaring.Bitmap, error) {
	data, err := bm.MarshalBinary()
	if err != nil {
		return nil, err
	}
	gathered := c.AllGatherBytes(data)
	out := make([]*roaring.Bitmap, len(gathered))
	for r, buf := range gathered {
		out[r] = roaring.New()
		if err := out[r].UnmarshalBinary(buf); err != nil {
			return nil, fmt.Errorf("Rank %d sent an unreadable ownership bitmap: %v.", r, err)
		}
	}
	return out, nil
}
