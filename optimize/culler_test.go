package optimize

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"world-engine/scene"
)

func cullerScene() (*scene.Scene, *scene.Camera, *scene.Node, *scene.Node) {
	s := scene.NewScene()
	cam := scene.NewCamera(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000)
	cam.SetPosition(mgl32.Vec3{0, 0, 0})
	cam.LookAt(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	s.SetCamera(cam)

	ahead := scene.NewNode("ahead")
	ahead.Mesh = scene.CreateSphere(1, 8, 4)
	ahead.SetPosition(mgl32.Vec3{0, 0, -20})
	s.AddNode(ahead)

	behind := scene.NewNode("behind")
	behind.Mesh = scene.CreateSphere(1, 8, 4)
	behind.SetPosition(mgl32.Vec3{0, 0, 20})
	s.AddNode(behind)

	return s, cam, ahead, behind
}

func TestCullerHidesNodesOutsideFrustum(t *testing.T) {
	s, cam, ahead, behind := cullerScene()
	c := NewFrustumCuller()
	c.Update(s, cam)

	if !ahead.Vis.Culling {
		t.Error("expected node in front of camera to stay visible")
	}
	if behind.Vis.Culling {
		t.Error("expected node behind camera to be culled")
	}
	if c.VisibleCount() != 1 {
		t.Errorf("visible count: expected 1, got %d", c.VisibleCount())
	}
	if c.CulledCount() != 1 {
		t.Errorf("culled count: expected 1, got %d", c.CulledCount())
	}
}

func TestCullerSkipsAuthorHiddenNodes(t *testing.T) {
	s, cam, ahead, _ := cullerScene()
	ahead.Visible = false

	c := NewFrustumCuller()
	c.Update(s, cam)

	if !ahead.Vis.OriginalCaptured {
		t.Error("expected author flag captured")
	}
	if ahead.Vis.Original {
		t.Error("expected captured flag to record the hidden state")
	}
	if c.VisibleCount() != 0 {
		t.Errorf("visible count: expected 0, got %d", c.VisibleCount())
	}
}

func TestCullerCapturesOriginalOnce(t *testing.T) {
	s, cam, ahead, _ := cullerScene()
	c := NewFrustumCuller()
	c.Update(s, cam)

	// Host hides the node after the first pass; the capture must not change.
	ahead.Visible = false
	c.Update(s, cam)

	if !ahead.Vis.Original {
		t.Error("expected first-seen visibility to stay captured")
	}
}

func TestCullerPolicyRunsOffCapturedFlag(t *testing.T) {
	s, cam, ahead, _ := cullerScene()
	ahead.Visible = false

	c := NewFrustumCuller()
	c.Update(s, cam)

	// Showing the node after capture must not pull it into the pass.
	ahead.Visible = true
	c.Update(s, cam)

	if c.VisibleCount() != 0 {
		t.Errorf("visible count: expected 0 for a node captured hidden, got %d", c.VisibleCount())
	}
}

func TestCullerResetShowsEverything(t *testing.T) {
	s, cam, _, behind := cullerScene()
	c := NewFrustumCuller()
	c.Update(s, cam)
	c.Reset(s)

	if !behind.Vis.Culling {
		t.Error("expected culled node visible after reset")
	}
	if c.VisibleCount() != 0 || c.CulledCount() != 0 {
		t.Error("expected counters cleared after reset")
	}
}

func TestCullerSkipsUnchangedViewWhenNotEveryFrame(t *testing.T) {
	s, cam, _, behind := cullerScene()
	c := NewFrustumCuller()
	c.EveryFrame = false
	c.Update(s, cam)

	// Manually flip the flag; with an unchanged camera the second pass
	// must be skipped and leave it alone.
	behind.Vis.Culling = true
	c.Update(s, cam)
	if !behind.Vis.Culling {
		t.Error("expected update skipped for unchanged view-projection")
	}

	cam.SetPosition(mgl32.Vec3{0, 0, 1})
	c.Update(s, cam)
	if behind.Vis.Culling {
		t.Error("expected update to run after camera moved")
	}
}

func BenchmarkCullerUpdate(b *testing.B) {
	s := scene.NewScene()
	cam := scene.NewCamera(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000)
	cam.LookAt(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	s.SetCamera(cam)

	mesh := scene.CreateSphere(1, 8, 4)
	for i := 0; i < 500; i++ {
		n := scene.NewNode("n")
		n.Mesh = mesh
		n.SetPosition(mgl32.Vec3{float32(i%50) * 4, 0, float32(i/50) * -4})
		s.AddNode(n)
	}

	c := NewFrustumCuller()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Update(s, cam)
	}
}
