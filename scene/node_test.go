package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNodeHierarchyWorldPosition(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	child.SetPosition(mgl32.Vec3{0, 5, 0})

	wp := child.WorldPosition()
	expected := mgl32.Vec3{10, 5, 0}
	if wp.Sub(expected).Len() > 0.001 {
		t.Errorf("world position: expected %v, got %v", expected, wp)
	}
}

func TestNodeWorldMatrixInvalidation(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	_ = child.GetWorldMatrix()
	parent.SetPosition(mgl32.Vec3{3, 0, 0})

	wp := child.WorldPosition()
	if math32.Abs(wp.X()-3) > 0.001 {
		t.Errorf("expected cached world matrix to refresh after parent move, got X=%v", wp.X())
	}
}

func TestNodeRenderablePredicate(t *testing.T) {
	n := NewNode("n")
	if !n.Renderable() {
		t.Error("new node: expected renderable")
	}

	n.Vis.Culling = false
	if n.Renderable() {
		t.Error("culled node: expected not renderable")
	}

	n.Vis.Culling = true
	n.Vis.LOD = false
	if n.Renderable() {
		t.Error("detail-hidden node: expected not renderable")
	}

	n.Vis.LOD = true
	n.Visible = false
	if n.Renderable() {
		t.Error("host-hidden node: expected not renderable")
	}
}

func TestNodeRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if len(parent.Children) != 0 {
		t.Errorf("expected no children, got %d", len(parent.Children))
	}
	if child.Parent != nil {
		t.Error("expected detached child to have nil parent")
	}
}

func TestSceneFindByName(t *testing.T) {
	s := NewScene()
	n := NewNode("target")
	s.AddNode(n)

	if got := s.Root.Find("target"); got != n {
		t.Errorf("Find: expected %v, got %v", n, got)
	}
	if got := s.Root.Find("missing"); got != nil {
		t.Errorf("Find missing: expected nil, got %v", got)
	}
}
