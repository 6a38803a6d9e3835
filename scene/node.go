package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
)

// Kind is the semantic tag of a scene object, used to pick impostor sprites.
// The set is closed; anything unrecognised spawns as KindGeneric.
type Kind int

const (
	KindGeneric Kind = iota
	KindTree
	KindRock
	KindBuilding
	KindNPC
)

func (k Kind) String() string {
	switch k {
	case KindTree:
		return "tree"
	case KindRock:
		return "rock"
	case KindBuilding:
		return "building"
	case KindNPC:
		return "npc"
	default:
		return "generic"
	}
}

// VisState splits per-node visibility into separately owned flags so the
// culler and the LOD selector never fight over one boolean. The culler owns
// Culling, the selector owns LOD; Original is the author-set flag captured
// the first time the culler sees the node.
type VisState struct {
	Original         bool
	OriginalCaptured bool
	Culling          bool
	LOD              bool
}

// Node represents an object in the scene graph.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Kind      Kind
	Visible   bool
	Vis       VisState
	Id        uint32

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      mgl32.Mat4
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		Vis:              VisState{Culling: true, LOD: true},
		Id:               nodeIdCounter,
		worldMatrixDirty: true,
	}
}

// Renderable is the single combined should-render predicate: the author flag
// and both optimizer-owned flags must all agree.
func (n *Node) Renderable() bool {
	return n.Visible && n.Vis.Culling && n.Vis.LOD
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

func (n *Node) GetWorldMatrix() mgl32.Mat4 {
	if n.worldMatrixDirty {
		localMatrix := n.Transform.Matrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.GetWorldMatrix().Mul4(localMatrix)
		} else {
			n.worldMatrix = localMatrix
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos mgl32.Vec3) {
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetRotation(rot mgl32.Quat) {
	n.Transform.Rotation = rot
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale mgl32.Vec3) {
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

func (n *Node) WorldPosition() mgl32.Vec3 {
	m := n.GetWorldMatrix()
	return mgl32.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
}

// Traverse visits all nodes in the graph.
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
