package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestProbeDownHitsCube(t *testing.T) {
	s := NewScene()
	cube := NewNode("box")
	cube.Mesh = CreateCube(2) // top face at y = 1
	s.AddNode(cube)

	y, ok := ProbeDown(s, mgl32.Vec3{0, 10, 0}, nil, 100)
	if !ok {
		t.Fatal("expected a hit on the cube below")
	}
	if math32.Abs(y-1) > 0.001 {
		t.Errorf("surface height: expected 1, got %v", y)
	}
}

func TestProbeDownRespectsExclude(t *testing.T) {
	s := NewScene()
	cube := NewNode("box")
	cube.Mesh = CreateCube(2)
	s.AddNode(cube)

	if _, ok := ProbeDown(s, mgl32.Vec3{0, 10, 0}, cube, 100); ok {
		t.Error("expected no hit when the only node is excluded")
	}
}

func TestProbeDownMaxDistance(t *testing.T) {
	s := NewScene()
	cube := NewNode("box")
	cube.Mesh = CreateCube(2)
	s.AddNode(cube)

	if _, ok := ProbeDown(s, mgl32.Vec3{0, 200, 0}, nil, 50); ok {
		t.Error("expected no hit beyond max distance")
	}
}

func TestRaycastSkipsAuthorHiddenNodes(t *testing.T) {
	s := NewScene()
	cube := NewNode("box")
	cube.Mesh = CreateCube(2)
	cube.Visible = false
	s.AddNode(cube)

	hit := Raycast(Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}, s, nil)
	if hit.Hit {
		t.Error("expected author-hidden node to be skipped")
	}
}

func TestRaycastHitsOptimizerHiddenNodes(t *testing.T) {
	s := NewScene()
	cube := NewNode("box")
	cube.Mesh = CreateCube(2)
	cube.Vis.Culling = false // as after a frustum pass with the camera elsewhere
	cube.Vis.LOD = false
	s.AddNode(cube)

	hit := Raycast(Ray{Origin: mgl32.Vec3{0, 10, 0}, Direction: mgl32.Vec3{0, -1, 0}}, s, nil)
	if !hit.Hit {
		t.Error("expected optimizer-hidden node to still intersect")
	}
}

func TestRaycastClosestWins(t *testing.T) {
	s := NewScene()
	near := NewNode("near")
	near.Mesh = CreateCube(2)
	near.SetPosition(mgl32.Vec3{0, 5, 0})
	far := NewNode("far")
	far.Mesh = CreateCube(2)
	s.AddNode(near)
	s.AddNode(far)

	hit := Raycast(Ray{Origin: mgl32.Vec3{0, 20, 0}, Direction: mgl32.Vec3{0, -1, 0}}, s, nil)
	if !hit.Hit {
		t.Fatal("expected a hit")
	}
	if hit.Node != near {
		t.Errorf("expected closest node %q, got %q", near.Name, hit.Node.Name)
	}
}
