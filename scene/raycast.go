package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// HitResult stores the result of a ray intersection test.
type HitResult struct {
	Hit      bool
	Distance float32
	Point    mgl32.Vec3
	Node     *Node
}

// Raycast tests a ray against all author-visible meshes in the scene and
// returns the closest hit. exclude (may be nil) skips one node, typically the
// terrain when probing for objects to stand on. Only the author's Visible
// flag filters candidates: geometry hidden by the culler or the detail
// selector still intersects, so collision does not depend on the previous
// frame's camera.
func Raycast(ray Ray, s *Scene, exclude *Node) HitResult {
	closest := HitResult{Distance: math32.MaxFloat32}

	for _, node := range s.MeshNodes() {
		if node == exclude || !node.Visible {
			continue
		}

		// Broad phase: world AABB test
		worldMatrix := node.GetWorldMatrix()
		if !node.Mesh.HasLocalAABB {
			continue
		}
		aabb := TransformAABB(node.Mesh.LocalAABB, worldMatrix)
		t, hit := rayAABBIntersect(ray, aabb)
		if !hit || t > closest.Distance {
			continue
		}

		// Narrow phase: per-triangle test
		result := rayMeshIntersect(ray, node)
		if result.Hit && result.Distance < closest.Distance {
			closest = result
		}
	}

	if !closest.Hit {
		return HitResult{}
	}
	return closest
}

// ProbeDown casts a ray straight down from origin and returns the Y of the
// closest surface below, if any within maxDist.
func ProbeDown(s *Scene, origin mgl32.Vec3, exclude *Node, maxDist float32) (float32, bool) {
	hit := Raycast(Ray{Origin: origin, Direction: mgl32.Vec3{0, -1, 0}}, s, exclude)
	if !hit.Hit || hit.Distance > maxDist {
		return 0, false
	}
	return hit.Point.Y(), true
}

func rayAABBIntersect(ray Ray, aabb AABB) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	for a := 0; a < 3; a++ {
		invD := 1.0 / ray.Direction[a]
		t1 := (aabb.Min[a] - ray.Origin[a]) * invD
		t2 := (aabb.Max[a] - ray.Origin[a]) * invD
		if invD < 0 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	return tmin, true
}

// rayMeshIntersect performs per-triangle intersection using Moller-Trumbore.
func rayMeshIntersect(ray Ray, node *Node) HitResult {
	mesh := node.Mesh
	worldMatrix := node.GetWorldMatrix()
	closest := HitResult{Distance: math32.MaxFloat32}

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0, i1, i2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0 := mgl32.TransformCoordinate(mesh.Vertices[i0].Position, worldMatrix)
		v1 := mgl32.TransformCoordinate(mesh.Vertices[i1].Position, worldMatrix)
		v2 := mgl32.TransformCoordinate(mesh.Vertices[i2].Position, worldMatrix)

		t, hit := mollerTrumbore(ray, v0, v1, v2)
		if hit && t > 0 && t < closest.Distance {
			closest.Hit = true
			closest.Distance = t
			closest.Point = ray.Origin.Add(ray.Direction.Mul(t))
			closest.Node = node
		}
	}

	return closest
}

func mollerTrumbore(ray Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	const epsilon = 0.0000001

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -epsilon && a < epsilon {
		return 0, false // parallel
	}

	f := 1.0 / a
	s := ray.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	t := f * edge2.Dot(q)
	return t, t > epsilon
}
