package optimize

import (
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/scene"
)

// FrustumCuller hides mesh nodes whose world bounding sphere lies completely
// outside the camera frustum. It owns only the Vis.Culling flag; the author
// Visible flag is captured once and never written.
type FrustumCuller struct {
	// EveryFrame re-extracts planes and re-tests on every Update call.
	// When false, Update only runs if the view-projection matrix changed.
	EveryFrame bool

	lastVP       mgl32.Mat4
	haveLastVP   bool
	visibleCount int
	culledCount  int
}

func NewFrustumCuller() *FrustumCuller {
	return &FrustumCuller{EveryFrame: true}
}

// Update tests every mesh node in the scene against the camera frustum and
// sets each node's Vis.Culling flag. The skip policy runs off the captured
// author flag: nodes hidden when first seen stay out of the pass and the
// counters even if Visible is flipped later. The live Visible flag still
// gates rendering through Renderable().
func (c *FrustumCuller) Update(s *scene.Scene, cam *scene.Camera) {
	vp := cam.GetViewProjectionMatrix()
	if !c.EveryFrame && c.haveLastVP && vp == c.lastVP {
		return
	}
	c.lastVP = vp
	c.haveLastVP = true

	f := scene.FrustumFromVP(vp)
	c.visibleCount = 0
	c.culledCount = 0

	for _, n := range s.MeshNodes() {
		if !n.Vis.OriginalCaptured {
			n.Vis.Original = n.Visible
			n.Vis.OriginalCaptured = true
		}
		if !n.Vis.Original {
			continue
		}

		center, radius, ok := scene.WorldBoundingSphere(n)
		if !ok {
			// No bounds: never cull
			n.Vis.Culling = true
			c.visibleCount++
			continue
		}

		if f.ContainsSphere(center, radius) {
			n.Vis.Culling = true
			c.visibleCount++
		} else {
			n.Vis.Culling = false
			c.culledCount++
		}
	}
}

// Reset marks every node visible again and clears the counters. Called when
// culling is toggled off so nothing stays hidden by a stale test.
func (c *FrustumCuller) Reset(s *scene.Scene) {
	for _, n := range s.MeshNodes() {
		n.Vis.Culling = true
	}
	c.visibleCount = 0
	c.culledCount = 0
	c.haveLastVP = false
}

func (c *FrustumCuller) VisibleCount() int { return c.visibleCount }
func (c *FrustumCuller) CulledCount() int  { return c.culledCount }
