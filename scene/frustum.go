package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a half-space: ax + by + cz + d = 0.
// Normal (a, b, c) points into the "inside" of the frustum.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the "inside" (same side as Normal).
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from a view-projection matrix
// (Gribb/Hartmann). mgl32 multiplies column vectors, so the extraction reads
// matrix rows via At(row, col). The planes are normalized so DistanceTo
// returns a true distance in world units.
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{vp.At(i, 0), vp.At(i, 1), vp.At(i, 2), vp.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.Add(r0)) // Left:   r3 + r0
	f.Planes[1] = normalizePlane(r3.Sub(r0)) // Right:  r3 - r0
	f.Planes[2] = normalizePlane(r3.Add(r1)) // Bottom: r3 + r1
	f.Planes[3] = normalizePlane(r3.Sub(r1)) // Top:    r3 - r1
	f.Planes[4] = normalizePlane(r3.Add(r2)) // Near:   r3 + r2
	f.Planes[5] = normalizePlane(r3.Sub(r2)) // Far:    r3 - r2
	return f
}

func normalizePlane(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// ContainsSphere returns false only when the sphere lies completely outside
// one of the six planes. Spheres straddling a plane count as inside.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for i := 0; i < 6; i++ {
		if f.Planes[i].DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// IntersectsFrustum returns false if the AABB is completely outside the
// frustum, using the positive-vertex test per plane.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := 0; i < 6; i++ {
		p := f.Planes[i]
		var pv mgl32.Vec3
		for a := 0; a < 3; a++ {
			if p.Normal[a] >= 0 {
				pv[a] = box.Max[a]
			} else {
				pv[a] = box.Min[a]
			}
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// WorldBoundingSphere returns the node's bounding sphere in world space:
// the mesh-local sphere center transformed by the world matrix, with the
// radius scaled by the largest axis scale of the transform.
func WorldBoundingSphere(n *Node) (center mgl32.Vec3, radius float32, ok bool) {
	if n.Mesh == nil || !n.Mesh.HasLocalAABB {
		return mgl32.Vec3{}, 0, false
	}
	localCenter, localRadius := n.Mesh.BoundingSphere()
	m := n.GetWorldMatrix()
	center = mgl32.TransformCoordinate(localCenter, m)
	radius = localRadius * maxColumnScale(m)
	return center, radius, true
}

// maxColumnScale returns the largest column length of the upper 3x3, i.e. the
// largest per-axis scale factor of the transform.
func maxColumnScale(m mgl32.Mat4) float32 {
	s := float32(0)
	for col := 0; col < 3; col++ {
		l := math32.Sqrt(m.At(0, col)*m.At(0, col) + m.At(1, col)*m.At(1, col) + m.At(2, col)*m.At(2, col))
		if l > s {
			s = l
		}
	}
	return s
}

// TransformAABB maps a local AABB through a world matrix by transforming all
// eight corners.
func TransformAABB(local AABB, m mgl32.Mat4) AABB {
	mn, mx := local.Min, local.Max
	corners := [8]mgl32.Vec3{
		{mn.X(), mn.Y(), mn.Z()},
		{mx.X(), mn.Y(), mn.Z()},
		{mn.X(), mx.Y(), mn.Z()},
		{mx.X(), mx.Y(), mn.Z()},
		{mn.X(), mn.Y(), mx.Z()},
		{mx.X(), mn.Y(), mx.Z()},
		{mn.X(), mx.Y(), mx.Z()},
		{mx.X(), mx.Y(), mx.Z()},
	}
	first := mgl32.TransformCoordinate(corners[0], m)
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		wp := mgl32.TransformCoordinate(corners[i], m)
		for a := 0; a < 3; a++ {
			if wp[a] < out.Min[a] {
				out.Min[a] = wp[a]
			}
			if wp[a] > out.Max[a] {
				out.Max[a] = wp[a]
			}
		}
	}
	return out
}
