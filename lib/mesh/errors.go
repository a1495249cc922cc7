package mesh

import (
	"fmt"
)

// ErrUnsupportedTopology indicates that an operation was asked to work over
// a mesh topology it is not implemented for (e.g. point location over an
// extruded mesh). It is always raised before any per-point work begins.
type ErrUnsupportedTopology struct {
	Kind Kind
	Op   string
}

func (e *ErrUnsupportedTopology) Error() string {
	return fmt.Sprintf("%s is not implemented for %s meshes", e.Op, e.Kind)
}
