package comm

/* local.go contains the in-process communicator. Each rank is a goroutine;
collectives funnel every rank's contribution through a collector goroutine
that waits for the whole group before distributing the gathered values, which
gives the same blocking semantics a real message-passing collective has. */

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

type rankValue struct {
	rank int
	val  interface{}
}

// group is the shared state of one in-process communicator. The collector
// goroutine owns the round structure: because every rank sends exactly one
// value and then blocks until the round's result arrives, the collector
// always sees exactly one value per rank per round, in any order.
type group struct {
	n   int
	in  chan rankValue
	out []chan []interface{}
}

func newGroup(n int) *group {
	g := &group{n: n, in: make(chan rankValue, n), out: make([]chan []interface{}, n)}
	for i := range g.out {
		g.out[i] = make(chan []interface{}, 1)
	}
	go g.collect()
	return g
}

func (g *group) collect() {
	for {
		vals := make([]interface{}, g.n)
		for i := 0; i < g.n; i++ {
			rv, ok := <-g.in
			if !ok {
				return
			}
			vals[rv.rank] = rv.val
		}
		for i := range g.out {
			g.out[i] <- vals
		}
	}
}

// exchange blocks until every rank has contributed a value, then returns
// the values indexed by rank.
func (g *group) exchange(rank int, v interface{}) []interface{} {
	g.in <- rankValue{rank, v}
	return <-g.out[rank]
}

func (g *group) close() { close(g.in) }

// Local is one rank of an in-process communicator group created by
// NewLocalGroup.
type Local struct {
	rank int
	g    *group
}

func (c *Local) Rank() int { return c.rank }
func (c *Local) Size() int { return c.g.n }

func (c *Local) AllReduceInt64(x int64) int64 {
	sum := int64(0)
	for _, v := range c.g.exchange(c.rank, x) {
		sum += v.(int64)
	}
	return sum
}

func (c *Local) AllReduceFloat64(x float64) float64 {
	sum := 0.0
	for _, v := range c.g.exchange(c.rank, x) {
		sum += v.(float64)
	}
	return sum
}

func (c *Local) AllGatherInt64(x int64) []int64 {
	vals := c.g.exchange(c.rank, x)
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = v.(int64)
	}
	return out
}

func (c *Local) AllGatherBytes(x []byte) [][]byte {
	vals := c.g.exchange(c.rank, x)
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = v.([]byte)
	}
	return out
}

// NewLocalGroup creates an in-process communicator with n ranks. The
// returned communicators share one group and may only be used from one
// goroutine each.
func NewLocalGroup(n int) ([]*Local, error) {
	if n < 1 {
		return nil, fmt.Errorf("A communicator group needs at least 1 rank, not %d.", n)
	}
	g := newGroup(n)
	comms := make([]*Local, n)
	for i := range comms {
		comms[i] = &Local{rank: i, g: g}
	}
	return comms, nil
}

// Run executes fn once per rank of a fresh n-rank group, each rank on its
// own goroutine, and returns the first error any rank returned. fn must
// invoke collectives uniformly on every rank: returning early from one rank
// while another is inside a collective deadlocks the group.
func Run(n int, fn func(c *Local) error) error {
	comms, err := NewLocalGroup(n)
	if err != nil {
		return err
	}
	defer comms[0].g.close()

	eg := new(errgroup.Group)
	for i := range comms {
		c := comms[i]
		eg.Go(func() error { return fn(c) })
	}
	return eg.Wait()
}
