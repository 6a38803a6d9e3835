package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/internal/opengl"
	"world-engine/scene"
)

// Engine is the rendering facade: it owns the GL backend, the resolution
// scale, and the per-frame draw statistics.
type Engine struct {
	backend *opengl.Backend
	window  *core.Window

	scale     float32
	drawCalls int
	triangles int
}

// New initialises the renderer for a window whose GL context is current.
func New(window *core.Window) (*Engine, error) {
	w, h := window.GetFramebufferSize()
	backend, err := opengl.NewBackend(w, h)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Engine{
		backend: backend,
		window:  window,
		scale:   1,
	}, nil
}

// SetResolutionScale renders the scene at scale times the window resolution;
// the result is blit-upscaled to the window. The bounds are the same ones the
// quality controller applies: [0.5, content scale], content scale at least 1.
func (e *Engine) SetResolutionScale(scale float32) {
	e.scale = clampScale(scale, e.window.ContentScale())
	e.applyRenderSize()
}

func clampScale(scale, maxScale float32) float32 {
	if maxScale < 1 {
		maxScale = 1
	}
	return mgl32.Clamp(scale, 0.5, maxScale)
}

// ResolutionScale returns the current render scale.
func (e *Engine) ResolutionScale() float32 { return e.scale }

// Resize updates the backend after a window framebuffer size change.
func (e *Engine) Resize() {
	w, h := e.window.GetFramebufferSize()
	e.backend.SetWindowSize(w, h)
	e.applyRenderSize()
}

func (e *Engine) applyRenderSize() {
	w, h := e.window.GetFramebufferSize()
	rw := int(float32(w) * e.scale)
	rh := int(float32(h) * e.scale)
	if err := e.backend.SetRenderSize(rw, rh); err != nil {
		fmt.Printf("renderer: resize: %v\n", err)
	}
}

// SetSun uploads the directional light for the coming frame.
func (e *Engine) SetSun(dir mgl32.Vec3, color core.Color, intensity float32, ambient core.Color) {
	e.backend.SetLighting(dir, color, intensity, ambient)
}

// RenderFrame draws all renderable nodes of the scene through the active
// camera and refreshes the draw statistics.
func (e *Engine) RenderFrame(s *scene.Scene) {
	if s.Camera == nil {
		return
	}

	e.backend.BeginFrame(s.SkyColor)
	vp := s.Camera.GetViewProjectionMatrix()

	e.drawCalls = 0
	e.triangles = 0
	for _, n := range s.RenderableNodes() {
		mvp := vp.Mul4(n.GetWorldMatrix())
		e.backend.DrawMesh(n.Mesh, mvp)
		e.drawCalls++
		e.triangles += len(n.Mesh.Indices) / 3
	}

	e.backend.EndFrame()
}

// ReleaseMesh frees the GPU buffers of a mesh that left the scene.
func (e *Engine) ReleaseMesh(m *scene.Mesh) {
	e.backend.ReleaseMesh(m)
}

// Destroy releases all GPU resources.
func (e *Engine) Destroy() {
	e.backend.Destroy()
}

// DrawCallCount reports the draw calls issued by the last frame.
func (e *Engine) DrawCallCount() int { return e.drawCalls }

// TriangleCount reports the triangles submitted by the last frame.
func (e *Engine) TriangleCount() int { return e.triangles }
