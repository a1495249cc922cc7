/*package comm provides the collective operations a point cloud needs for
its global queries: a sum-reduction for global counts and all-gathers for
validation data. The interface mirrors the handful of typed MPI collectives
this library's ancestors used, but ships with two pure-Go implementations: a
trivial single-process communicator and an in-process rank group that runs
each "process" on its own goroutine, so distributed behavior is testable
without an MPI launcher.

Every collective is blocking and must be invoked uniformly by every rank in
the communicator. A rank that skips a collective while its peers enter it
blocks the whole group indefinitely.*/
package comm

// Comm is a group of processes that can exchange data collectively. Rank
// identifies the calling process within the group; collectives return the
// same result on every rank.
type Comm interface {
	// Rank returns this process's index within the group.
	Rank() int
	// Size returns the number of processes in the group.
	Size() int
	// AllReduceInt64 returns the sum of x over all ranks.
	AllReduceInt64(x int64) int64
	// AllReduceFloat64 returns the sum of x over all ranks.
	AllReduceFloat64(x float64) float64
	// AllGatherInt64 returns every rank's x, indexed by rank.
	AllGatherInt64(x int64) []int64
	// AllGatherBytes returns every rank's buffer, indexed by rank. The
	// buffers may have different lengths on different ranks.
	AllGatherBytes(x []byte) [][]byte
}

// Self is the single-process communicator: rank 0 of a group of size 1,
// with all collectives reducing to the identity.
type Self struct{}

func (Self) Rank() int                          { return 0 }
func (Self) Size() int                          { return 1 }
func (Self) AllReduceInt64(x int64) int64       { return x }
func (Self) AllReduceFloat64(x float64) float64 { return x }
func (Self) AllGatherInt64(x int64) []int64     { return []int64{x} }
func (Self) AllGatherBytes(x []byte) [][]byte   { return [][]byte{x} }
