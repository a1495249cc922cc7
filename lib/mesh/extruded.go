package mesh

import (
	"fmt"
)

// ExtrudedMesh is a layered mesh built by stacking copies of a base mesh in
// an extra dimension. Point clouds cannot be built over extruded meshes;
// the type exists so consumers can represent one and get a clean
// unsupported-topology failure instead of a bad search.
type ExtrudedMesh struct {
	base   *SimplexMesh
	layers int
}

// NewExtrudedMesh extrudes base through the given number of layers.
func NewExtrudedMesh(base *SimplexMesh, layers int) (*ExtrudedMesh, error) {
	if layers < 1 {
		return nil, fmt.Errorf("An extruded mesh needs at least 1 layer, not %d.", layers)
	}
	if base.gdim == 3 {
		return nil, fmt.Errorf("A 3-dimensional mesh cannot be extruded.")
	}
	return &ExtrudedMesh{base: base, layers: layers}, nil
}

// Base returns the mesh this mesh was extruded from.
func (m *ExtrudedMesh) Base() *SimplexMesh { return m.base }

// Layers returns the number of extrusion layers.
func (m *ExtrudedMesh) Layers() int { return m.layers }

func (m *ExtrudedMesh) GeometricDim() int   { return m.base.gdim + 1 }
func (m *ExtrudedMesh) TopologicalDim() int { return m.base.gdim + 1 }
func (m *ExtrudedMesh) Kind() Kind          { return Extruded }

func (m *ExtrudedMesh) CellCounts() (core, owned, total int) {
	core, owned, total = m.base.CellCounts()
	return core * m.layers, owned * m.layers, total * m.layers
}

// Corners is part of the Partition interface, but extruded cells are not
// simplices and have no corner list in this representation.
func (m *ExtrudedMesh) Corners(cell int) [][]float64 { return nil }
