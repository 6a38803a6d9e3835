package optimize

import (
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/scene"
)

// DefaultThresholds are the minimum camera distances, in world units, at
// which each representation past the full-detail one becomes active.
var DefaultThresholds = []float32{50, 150, 300}

// managedNode tracks one node's detail chain. representations holds the
// original mesh at index 0, then reduced meshes, then the impostor sprite
// last. slots is parallel to representations and names the threshold slot
// that activates each entry (-1 is the always-active original), so a chain
// with missing middle levels keeps the original until the impostor's own
// threshold. The original rotation is restored when leaving the impostor
// stage.
type managedNode struct {
	node            *scene.Node
	representations []*scene.Mesh
	slots           []int
	originalMesh    *scene.Mesh
	originalRot     mgl32.Quat
	currentLevel    int
}

// DistanceLODSelector assigns each registered node the representation that
// matches its distance from the camera. Exactly one representation is
// attached to the node at any time.
type DistanceLODSelector struct {
	builder    *DetailLevelBuilder
	registry   map[uint32]*managedNode
	thresholds []float32

	// MaxDistance hides managed nodes entirely beyond this camera distance.
	// Zero disables far-hiding.
	MaxDistance float32
}

func NewDistanceLODSelector(builder *DetailLevelBuilder) *DistanceLODSelector {
	return &DistanceLODSelector{
		builder:    builder,
		registry:   make(map[uint32]*managedNode),
		thresholds: append([]float32(nil), DefaultThresholds...),
	}
}

// CreateLevelsFor registers a node for distance-based detail management.
// Registering the same node twice is a no-op.
func (s *DistanceLODSelector) CreateLevelsFor(n *scene.Node) {
	if n.Mesh == nil {
		return
	}
	if _, ok := s.registry[n.Id]; ok {
		return
	}

	reps := s.builder.BuildLevels(n.Mesh)
	if len(reps) == 1 && n.Mesh.Params == nil {
		log.Printf("optimize: %q carries no shape parameters, impostor only", n.Name)
	}

	slots := make([]int, 0, len(reps)+1)
	slots = append(slots, -1)
	for i := 1; i < len(reps); i++ {
		slots = append(slots, i-1)
	}

	// The impostor always sits in the far slot, even when reduced levels are
	// missing, so a short chain keeps the original until the far threshold.
	reps = append(reps, s.builder.Impostor(n))
	slots = append(slots, s.builder.ImpostorSlot())

	s.registry[n.Id] = &managedNode{
		node:            n,
		representations: reps,
		slots:           slots,
		originalMesh:    n.Mesh,
		originalRot:     n.Transform.Rotation,
	}
}

// Remove releases a node from management and restores its original mesh,
// rotation, and visibility flag.
func (s *DistanceLODSelector) Remove(n *scene.Node) {
	m, ok := s.registry[n.Id]
	if !ok {
		return
	}
	m.node.Mesh = m.originalMesh
	m.node.SetRotation(m.originalRot)
	m.node.Vis.LOD = true
	delete(s.registry, n.Id)
}

// SetThresholds replaces the distance thresholds. The slice is copied; values
// must be ascending. Takes effect on the next Update.
func (s *DistanceLODSelector) SetThresholds(thresholds []float32) {
	s.thresholds = append([]float32(nil), thresholds...)
}

// Thresholds returns a copy of the active distance thresholds.
func (s *DistanceLODSelector) Thresholds() []float32 {
	return append([]float32(nil), s.thresholds...)
}

// ManagedCount reports how many nodes are under detail management.
func (s *DistanceLODSelector) ManagedCount() int {
	return len(s.registry)
}

// Update re-evaluates every managed node against the camera position.
func (s *DistanceLODSelector) Update(cameraPos mgl32.Vec3) {
	for _, m := range s.registry {
		s.updateNode(m, cameraPos)
	}
}

func (s *DistanceLODSelector) updateNode(m *managedNode, cameraPos mgl32.Vec3) {
	dist := m.node.WorldPosition().Sub(cameraPos).Len()

	if s.MaxDistance > 0 && dist > s.MaxDistance {
		m.node.Vis.LOD = false
		return
	}
	m.node.Vis.LOD = true

	level := s.SelectLevel(dist, m.slots)
	mesh := m.representations[level]
	if m.node.Mesh != mesh {
		m.node.Mesh = mesh
		m.currentLevel = level
	}

	if mesh.Billboard {
		s.faceCamera(m.node, cameraPos)
	} else if m.node.Transform.Rotation != m.originalRot {
		m.node.SetRotation(m.originalRot)
	}
}

// SelectLevel picks the representation for a camera distance. slots names the
// threshold slot activating each chain entry; -1 is always active. The result
// is the largest index whose slot threshold does not exceed dist, so a chain
// missing middle slots stays on the previous entry until a later slot's
// threshold is reached.
func (s *DistanceLODSelector) SelectLevel(dist float32, slots []int) int {
	selected := 0
	for i, slot := range slots {
		if slot < 0 {
			selected = i
			continue
		}
		if slot < len(s.thresholds) && dist >= s.thresholds[slot] {
			selected = i
		}
	}
	return selected
}

// faceCamera yaws the node so its billboard plane faces the camera.
func (s *DistanceLODSelector) faceCamera(n *scene.Node, cameraPos mgl32.Vec3) {
	to := cameraPos.Sub(n.WorldPosition())
	yaw := math32.Atan2(to.X(), to.Z())
	n.SetRotation(mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}))
}

// RestoreAll puts every managed node back on its original mesh and rotation.
// Used when detail management is toggled off; registration is kept.
func (s *DistanceLODSelector) RestoreAll() {
	for _, m := range s.registry {
		m.node.Mesh = m.originalMesh
		m.node.SetRotation(m.originalRot)
		m.node.Vis.LOD = true
		m.currentLevel = 0
	}
}
