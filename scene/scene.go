package scene

import "world-engine/core"

// Scene manages a collection of nodes and the active camera.
type Scene struct {
	Root     *Node
	Camera   *Camera
	Ambient  core.Color
	SkyColor core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:     NewNode("Root"),
		Ambient:  core.Color{R: 0.2, G: 0.2, B: 0.2, A: 1.0},
		SkyColor: core.Color{R: 0.5, G: 0.7, B: 1.0, A: 1.0},
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

// MeshNodes returns all nodes carrying a mesh, regardless of visibility.
// Callers that draw should filter with Renderable().
func (s *Scene) MeshNodes() []*Node {
	var nodes []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Mesh != nil {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// RenderableNodes returns the nodes that pass the combined visibility predicate.
func (s *Scene) RenderableNodes() []*Node {
	var visible []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Mesh != nil && node.Renderable() {
			visible = append(visible, node)
		}
	})
	return visible
}
