package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
)

// DrawMode controls the GL primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota // gl.TRIANGLES (default)
	DrawLines                     // gl.LINES: pairs of indices form line segments
)

// Shape identifies which parametric generator built a mesh.
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeCylinder
	ShapeCone
	ShapeCube
	ShapePlane
	ShapeBillboard
)

// ShapeParams records the arguments a primitive mesh was generated from, so a
// lower-detail variant can be rebuilt by scaling the segment counts. Meshes
// loaded from files carry no params and cannot be rebuilt.
type ShapeParams struct {
	Shape          Shape
	Radius         float32
	Height         float32
	Width          float32
	Depth          float32
	RadialSegments int
	Rings          int
	Subdivisions   int
}

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name       string
	Vertices   []core.Vertex
	Indices    []uint32
	DrawMode   DrawMode
	Billboard  bool // orient to face the camera every frame (impostors)

	// Cached local-space bounds (computed by CreateMeshFromData).
	// sphereRadius is the max vertex distance from the AABB centre.
	LocalAABB    AABB
	HasLocalAABB bool
	sphereRadius float32

	// Params is set by the parametric generators in primitives.go.
	// Nil for loaded geometry.
	Params *ShapeParams

	// Material holds surface shading properties. If nil, DefaultMaterial() is used.
	Material *Material

	// GPUData is set by the renderer backend. Do not access directly.
	GPUData interface{}
}

// MeshInfo is a geometry summary for inspection/telemetry.
type MeshInfo struct {
	Name         string  `json:"name"`
	Vertices     int     `json:"vertices"`
	Indices      int     `json:"indices"`
	Triangles    int     `json:"triangles"`
	Parametric   bool    `json:"parametric"`
	SphereRadius float32 `json:"sphereRadius"`
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
		m.sphereRadius = computeSphereRadius(vertices, m.LocalAABB)
	}
	return m
}

// computeSphereRadius returns the max vertex distance from the AABB centre:
// a tight enclosing radius, smaller than the AABB half-diagonal for anything
// rounder than a box.
func computeSphereRadius(vertices []core.Vertex, box AABB) float32 {
	center := box.Min.Add(box.Max).Mul(0.5)
	max := float32(0)
	for _, v := range vertices {
		if d := v.Position.Sub(center).Len(); d > max {
			max = d
		}
	}
	return max
}

func computeLocalAABB(vertices []core.Vertex) AABB {
	min := vertices[0].Position
	max := vertices[0].Position
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		for a := 0; a < 3; a++ {
			if p[a] < min[a] {
				min[a] = p[a]
			}
			if p[a] > max[a] {
				max[a] = p[a]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

// BoundingSphere returns the local-space sphere enclosing the mesh: the tight
// vertex radius when known, otherwise the AABB half-diagonal.
func (m *Mesh) BoundingSphere() (center mgl32.Vec3, radius float32) {
	if !m.HasLocalAABB {
		return mgl32.Vec3{}, 0
	}
	center = m.LocalAABB.Min.Add(m.LocalAABB.Max).Mul(0.5)
	if m.sphereRadius > 0 {
		return center, m.sphereRadius
	}
	return center, m.LocalAABB.Max.Sub(center).Len()
}

// MaxExtent returns the largest edge of the local AABB, used to size impostors.
func (m *Mesh) MaxExtent() float32 {
	if !m.HasLocalAABB {
		return 1
	}
	d := m.LocalAABB.Max.Sub(m.LocalAABB.Min)
	return math32.Max(d.X(), math32.Max(d.Y(), d.Z()))
}

// Info returns an inspection summary of the mesh geometry.
func (m *Mesh) Info() MeshInfo {
	_, r := m.BoundingSphere()
	return MeshInfo{
		Name:         m.Name,
		Vertices:     len(m.Vertices),
		Indices:      len(m.Indices),
		Triangles:    len(m.Indices) / 3,
		Parametric:   m.Params != nil,
		SphereRadius: r,
	}
}
