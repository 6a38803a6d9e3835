package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
)

var primitiveGray = core.Color{R: 0.8, G: 0.8, B: 0.8, A: 1.0}

// CreateSphere generates a UV-sphere mesh.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi := math32.Sin(phi)
		cosPhi := math32.Cos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta := math32.Sin(theta)
			cosTheta := math32.Cos(theta)

			normal := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
				Color:    primitiveGray,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)
			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	m := CreateMeshFromData("Sphere", vertices, indices)
	m.Params = &ShapeParams{Shape: ShapeSphere, Radius: radius, RadialSegments: segments, Rings: rings}
	return m
}

// CreateCylinder generates a cylinder mesh with caps.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		cosT := math32.Cos(theta)
		sinT := math32.Sin(theta)
		normal := mgl32.Vec3{cosT, 0, sinT}
		u := float32(i) / float32(segments)

		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{cosT * radius, -halfHeight, sinT * radius},
			Normal:   normal,
			UV:       mgl32.Vec2{u, 0},
			Color:    primitiveGray,
		})
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{cosT * radius, halfHeight, sinT * radius},
			Normal:   normal,
			UV:       mgl32.Vec2{u, 1},
			Color:    primitiveGray,
		})
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	// Caps: center fan top and bottom
	for _, end := range []struct {
		y      float32
		normal mgl32.Vec3
		flip   bool
	}{
		{halfHeight, mgl32.Vec3{0, 1, 0}, false},
		{-halfHeight, mgl32.Vec3{0, -1, 0}, true},
	} {
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{0, end.y, 0},
			Normal:   end.normal,
			UV:       mgl32.Vec2{0.5, 0.5},
			Color:    primitiveGray,
		})
		for i := 0; i < segments; i++ {
			theta := float32(i) * 2 * math32.Pi / float32(segments)
			nextTheta := float32(i+1) * 2 * math32.Pi / float32(segments)
			v1 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{math32.Cos(theta) * radius, end.y, math32.Sin(theta) * radius},
				Normal:   end.normal,
				UV:       mgl32.Vec2{math32.Cos(theta)*0.5 + 0.5, math32.Sin(theta)*0.5 + 0.5},
				Color:    primitiveGray,
			})
			v2 := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{math32.Cos(nextTheta) * radius, end.y, math32.Sin(nextTheta) * radius},
				Normal:   end.normal,
				UV:       mgl32.Vec2{math32.Cos(nextTheta)*0.5 + 0.5, math32.Sin(nextTheta)*0.5 + 0.5},
				Color:    primitiveGray,
			})
			if end.flip {
				indices = append(indices, center, v2, v1)
			} else {
				indices = append(indices, center, v1, v2)
			}
		}
	}

	m := CreateMeshFromData("Cylinder", vertices, indices)
	m.Params = &ShapeParams{Shape: ShapeCylinder, Radius: radius, Height: height, RadialSegments: segments}
	return m
}

// CreateCone generates a cone mesh with a base cap.
func CreateCone(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	tipIdx := uint32(0)
	vertices = append(vertices, core.Vertex{
		Position: mgl32.Vec3{0, halfHeight, 0},
		Normal:   mgl32.Vec3{0, 1, 0},
		UV:       mgl32.Vec2{0.5, 0},
		Color:    primitiveGray,
	})

	slopeAngle := math32.Atan2(radius, height)
	ny := math32.Cos(slopeAngle)
	nr := math32.Sin(slopeAngle)

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		cosT := math32.Cos(theta)
		sinT := math32.Sin(theta)
		normal := mgl32.Vec3{cosT * nr, ny, sinT * nr}.Normalize()

		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{cosT * radius, -halfHeight, sinT * radius},
			Normal:   normal,
			UV:       mgl32.Vec2{float32(i) / float32(segments), 1},
			Color:    primitiveGray,
		})
	}

	for i := 0; i < segments; i++ {
		indices = append(indices, tipIdx, uint32(i+1), uint32(i+2))
	}

	botCenter := uint32(len(vertices))
	vertices = append(vertices, core.Vertex{
		Position: mgl32.Vec3{0, -halfHeight, 0},
		Normal:   mgl32.Vec3{0, -1, 0},
		UV:       mgl32.Vec2{0.5, 0.5},
		Color:    primitiveGray,
	})
	for i := 0; i < segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		nextTheta := float32(i+1) * 2 * math32.Pi / float32(segments)
		v1 := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{math32.Cos(theta) * radius, -halfHeight, math32.Sin(theta) * radius},
			Normal:   mgl32.Vec3{0, -1, 0},
			Color:    primitiveGray,
		})
		v2 := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{math32.Cos(nextTheta) * radius, -halfHeight, math32.Sin(nextTheta) * radius},
			Normal:   mgl32.Vec3{0, -1, 0},
			Color:    primitiveGray,
		})
		indices = append(indices, botCenter, v2, v1)
	}

	m := CreateMeshFromData("Cone", vertices, indices)
	m.Params = &ShapeParams{Shape: ShapeCone, Radius: radius, Height: height, RadialSegments: segments}
	return m
}

// CreateCube generates an axis-aligned cube mesh.
func CreateCube(size float32) *Mesh {
	s := size / 2

	type face struct {
		normal mgl32.Vec3
		a, b   mgl32.Vec3 // in-plane basis
	}
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	}

	var vertices []core.Vertex
	var indices []uint32
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, f := range faces {
		base := uint32(len(vertices))
		corners := [4]mgl32.Vec3{
			f.normal.Mul(s).Sub(f.a.Mul(s)).Sub(f.b.Mul(s)),
			f.normal.Mul(s).Add(f.a.Mul(s)).Sub(f.b.Mul(s)),
			f.normal.Mul(s).Add(f.a.Mul(s)).Add(f.b.Mul(s)),
			f.normal.Mul(s).Sub(f.a.Mul(s)).Add(f.b.Mul(s)),
		}
		for i, c := range corners {
			vertices = append(vertices, core.Vertex{
				Position: c,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    core.ColorWhite,
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	m := CreateMeshFromData("Cube", vertices, indices)
	m.Params = &ShapeParams{Shape: ShapeCube, Width: size, Height: size, Depth: size}
	return m
}

// CreatePlane generates a flat plane mesh on the XZ plane.
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32
	halfW := width / 2
	halfD := depth / 2

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{-halfW + u*width, 0, -halfD + v*depth},
				Normal:   mgl32.Vec3{0, 1, 0},
				UV:       mgl32.Vec2{u, v},
				Color:    primitiveGray,
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1
			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	m := CreateMeshFromData("Plane", vertices, indices)
	m.Params = &ShapeParams{Shape: ShapePlane, Width: width, Depth: depth, Subdivisions: subdivisions}
	return m
}

// CreateBillboard generates a camera-facing quad of the given edge size with a
// flat vertex color. Used for impostor sprites.
func CreateBillboard(name string, size float32, color core.Color) *Mesh {
	h := size / 2
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-h, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: color},
		{Position: mgl32.Vec3{h, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: color},
		{Position: mgl32.Vec3{h, size, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: color},
		{Position: mgl32.Vec3{-h, size, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: color},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	m := CreateMeshFromData(name, vertices, indices)
	m.Params = &ShapeParams{Shape: ShapeBillboard, Width: size, Height: size}
	m.Billboard = true
	return m
}

// BuildFromParams regenerates a primitive from recorded parameters. Returns
// nil when the shape has no segment counts worth reducing (cube, billboard).
func BuildFromParams(p ShapeParams) *Mesh {
	switch p.Shape {
	case ShapeSphere:
		return CreateSphere(p.Radius, p.RadialSegments, p.Rings)
	case ShapeCylinder:
		return CreateCylinder(p.Radius, p.Height, p.RadialSegments)
	case ShapeCone:
		return CreateCone(p.Radius, p.Height, p.RadialSegments)
	case ShapePlane:
		return CreatePlane(p.Width, p.Depth, p.Subdivisions)
	default:
		return nil
	}
}
