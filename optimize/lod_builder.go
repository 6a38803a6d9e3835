package optimize

import (
	"world-engine/core"
	"world-engine/scene"
)

// Default segment scaling factors for reduced detail levels, highest detail
// first. Factors below 0.5 also drop normal and metallic-roughness maps.
var defaultDetailFactors = []float32{0.5, 0.25}

// impostorPalette maps every object kind to a sprite colour. Unlisted kinds
// fall back to the generic entry.
var impostorPalette = map[scene.Kind]core.Color{
	scene.KindGeneric:  {R: 0.6, G: 0.6, B: 0.6, A: 1},
	scene.KindTree:     {R: 0.20, G: 0.45, B: 0.18, A: 1},
	scene.KindRock:     {R: 0.45, G: 0.42, B: 0.40, A: 1},
	scene.KindBuilding: {R: 0.55, G: 0.50, B: 0.45, A: 1},
	scene.KindNPC:      {R: 0.75, G: 0.55, B: 0.35, A: 1},
}

type impostorKey struct {
	kind scene.Kind
	size int // extent rounded to the nearest unit
}

// DetailLevelBuilder generates reduced-detail meshes and impostor sprites.
// Impostors are pooled by kind and size so nodes of the same shape share one
// billboard mesh.
type DetailLevelBuilder struct {
	factors  []float32
	impostor map[impostorKey]*scene.Mesh
}

func NewDetailLevelBuilder() *DetailLevelBuilder {
	return &DetailLevelBuilder{
		factors:  defaultDetailFactors,
		impostor: make(map[impostorKey]*scene.Mesh),
	}
}

// BuildLevels returns the detail chain for a mesh, highest detail first, with
// the original mesh at index 0. Meshes without construction parameters cannot
// be rebuilt at lower segment counts, so their chain is just the original.
func (b *DetailLevelBuilder) BuildLevels(m *scene.Mesh) []*scene.Mesh {
	levels := []*scene.Mesh{m}
	if m.Params == nil {
		return levels
	}

	for _, f := range b.factors {
		reduced := b.buildReduced(m, f)
		if reduced == nil {
			continue
		}
		levels = append(levels, reduced)
	}
	return levels
}

// buildReduced regenerates the mesh with segment counts scaled by f, keeping
// the generator floors so the shape stays closed.
func (b *DetailLevelBuilder) buildReduced(m *scene.Mesh, f float32) *scene.Mesh {
	p := *m.Params
	p.RadialSegments = scaleSegments(p.RadialSegments, f, 3)
	p.Rings = scaleSegments(p.Rings, f, 2)
	p.Subdivisions = scaleSegments(p.Subdivisions, f, 1)

	reduced := scene.BuildFromParams(p)
	if reduced == nil {
		return nil
	}
	reduced.Name = m.Name + "_lod"

	if m.Material != nil {
		mat := m.Material.Clone()
		if f < 0.5 {
			mat.StripDetailMaps()
		}
		reduced.Material = mat
	}
	return reduced
}

func scaleSegments(n int, f float32, floor int) int {
	if n == 0 {
		return 0
	}
	scaled := int(float32(n) * f)
	if scaled < floor {
		return floor
	}
	return scaled
}

// Impostor returns a flat billboard sprite for the given node, sized to the
// mesh's largest extent and coloured by kind. Sprites are shared across nodes
// with the same kind and rounded size.
func (b *DetailLevelBuilder) Impostor(n *scene.Node) *scene.Mesh {
	size := float32(1)
	if n.Mesh != nil {
		size = n.Mesh.MaxExtent()
	}
	key := impostorKey{kind: n.Kind, size: roundSize(size)}
	if m, ok := b.impostor[key]; ok {
		return m
	}

	color, ok := impostorPalette[n.Kind]
	if !ok {
		color = impostorPalette[scene.KindGeneric]
	}
	m := scene.CreateBillboard("impostor_"+n.Kind.String(), float32(key.size), color)
	b.impostor[key] = m
	return m
}

func roundSize(s float32) int {
	r := int(s + 0.5)
	if r < 1 {
		return 1
	}
	return r
}

// ImpostorSlot returns the threshold slot at which the impostor activates:
// one past the reduced levels, so the impostor is always the most distant
// representation regardless of how many reduced levels a mesh yields.
func (b *DetailLevelBuilder) ImpostorSlot() int {
	return len(b.factors)
}

// PooledImpostorCount reports how many distinct impostor sprites exist.
func (b *DetailLevelBuilder) PooledImpostorCount() int {
	return len(b.impostor)
}
