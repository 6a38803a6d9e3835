package world

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/scene"
	"world-engine/terrain"
)

// SpawnConfig controls how many objects of each kind populate the terrain.
type SpawnConfig struct {
	Trees     int
	Rocks     int
	Buildings int
	NPCs      int

	// Margin keeps spawns away from the terrain edge, in world units.
	Margin float32
	Seed   int64
}

func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Trees:     120,
		Rocks:     60,
		Buildings: 15,
		NPCs:      10,
		Margin:    20,
		Seed:      1,
	}
}

// Populate scatters objects over the terrain and returns the group node
// holding them all. The same seed always produces the same layout.
func Populate(s *scene.Scene, hf *terrain.HeightField, cfg SpawnConfig) *scene.Node {
	rng := rand.New(rand.NewSource(cfg.Seed))
	group := scene.NewNode("Objects")

	for i := 0; i < cfg.Trees; i++ {
		group.AddChild(spawnTree(rng, hf, cfg, i))
	}
	for i := 0; i < cfg.Rocks; i++ {
		group.AddChild(spawnRock(rng, hf, cfg, i))
	}
	for i := 0; i < cfg.Buildings; i++ {
		group.AddChild(spawnBuilding(rng, hf, cfg, i))
	}
	for i := 0; i < cfg.NPCs; i++ {
		group.AddChild(spawnNPC(rng, hf, cfg, i))
	}

	s.AddNode(group)
	return group
}

// place returns a random position on the terrain surface.
func place(rng *rand.Rand, hf *terrain.HeightField, cfg SpawnConfig) mgl32.Vec3 {
	extent := hf.Size/2 - cfg.Margin
	x := (rng.Float32()*2 - 1) * extent
	z := (rng.Float32()*2 - 1) * extent
	return mgl32.Vec3{x, hf.HeightAt(x, z), z}
}

func spawnTree(rng *rand.Rand, hf *terrain.HeightField, cfg SpawnConfig, i int) *scene.Node {
	trunkHeight := 2 + rng.Float32()*2
	canopyHeight := 3 + rng.Float32()*2

	n := scene.NewNode(fmt.Sprintf("tree_%d", i))
	n.Kind = scene.KindTree
	n.SetPosition(place(rng, hf, cfg))

	trunk := scene.NewNode("trunk")
	trunk.Kind = scene.KindTree
	trunk.Mesh = scene.CreateCylinder(0.25, trunkHeight, 8)
	trunk.Mesh.Material = scene.NewMaterial("bark", core.Color{R: 0.45, G: 0.30, B: 0.18, A: 1})
	trunk.SetPosition(mgl32.Vec3{0, trunkHeight / 2, 0})
	n.AddChild(trunk)

	canopy := scene.NewNode("canopy")
	canopy.Kind = scene.KindTree
	canopy.Mesh = scene.CreateCone(1.5+rng.Float32(), canopyHeight, 10)
	canopy.Mesh.Material = scene.NewMaterial("leaves", core.Color{R: 0.18, G: 0.42, B: 0.16, A: 1})
	canopy.SetPosition(mgl32.Vec3{0, trunkHeight + canopyHeight/2, 0})
	n.AddChild(canopy)

	return n
}

func spawnRock(rng *rand.Rand, hf *terrain.HeightField, cfg SpawnConfig, i int) *scene.Node {
	n := scene.NewNode(fmt.Sprintf("rock_%d", i))
	n.Kind = scene.KindRock
	n.Mesh = scene.CreateSphere(0.5+rng.Float32()*0.8, 8, 5)
	n.Mesh.Material = scene.NewMaterial("rock", core.Color{R: 0.45, G: 0.42, B: 0.40, A: 1})
	n.SetPosition(place(rng, hf, cfg))
	// Squash into a boulder shape
	n.SetScale(mgl32.Vec3{1 + rng.Float32()*0.5, 0.6 + rng.Float32()*0.3, 1 + rng.Float32()*0.5})
	return n
}

func spawnBuilding(rng *rand.Rand, hf *terrain.HeightField, cfg SpawnConfig, i int) *scene.Node {
	height := 4 + rng.Float32()*8
	n := scene.NewNode(fmt.Sprintf("building_%d", i))
	n.Kind = scene.KindBuilding
	n.Mesh = scene.CreateCube(1)
	n.Mesh.Material = scene.NewMaterial("wall", core.Color{R: 0.60, G: 0.55, B: 0.48, A: 1})

	pos := place(rng, hf, cfg)
	n.SetPosition(mgl32.Vec3{pos.X(), pos.Y() + height/2, pos.Z()})
	n.SetScale(mgl32.Vec3{3 + rng.Float32()*4, height, 3 + rng.Float32()*4})
	return n
}

func spawnNPC(rng *rand.Rand, hf *terrain.HeightField, cfg SpawnConfig, i int) *scene.Node {
	n := scene.NewNode(fmt.Sprintf("npc_%d", i))
	n.Kind = scene.KindNPC
	n.SetPosition(place(rng, hf, cfg))

	body := scene.NewNode("body")
	body.Kind = scene.KindNPC
	body.Mesh = scene.CreateCylinder(0.35, 1.2, 10)
	body.Mesh.Material = scene.NewMaterial("cloth", core.Color{R: 0.30, G: 0.35, B: 0.65, A: 1})
	body.SetPosition(mgl32.Vec3{0, 0.6, 0})
	n.AddChild(body)

	head := scene.NewNode("head")
	head.Kind = scene.KindNPC
	head.Mesh = scene.CreateSphere(0.25, 10, 6)
	head.Mesh.Material = scene.NewMaterial("skin", core.Color{R: 0.85, G: 0.70, B: 0.55, A: 1})
	head.SetPosition(mgl32.Vec3{0, 1.45, 0})
	n.AddChild(head)

	return n
}
