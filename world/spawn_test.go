package world

import (
	"testing"

	"world-engine/scene"
	"world-engine/terrain"
)

func testField(t *testing.T) *terrain.HeightField {
	t.Helper()
	hf, err := terrain.Generate(400, 64, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return hf
}

func TestPopulateCounts(t *testing.T) {
	hf := testField(t)
	s := scene.NewScene()
	cfg := SpawnConfig{Trees: 5, Rocks: 3, Buildings: 2, NPCs: 1, Margin: 20, Seed: 1}
	group := Populate(s, hf, cfg)

	if len(group.Children) != 11 {
		t.Errorf("top-level spawns: expected 11, got %d", len(group.Children))
	}

	counts := map[scene.Kind]int{}
	for _, n := range group.Children {
		counts[n.Kind]++
	}
	if counts[scene.KindTree] != 5 {
		t.Errorf("trees: expected 5, got %d", counts[scene.KindTree])
	}
	if counts[scene.KindRock] != 3 {
		t.Errorf("rocks: expected 3, got %d", counts[scene.KindRock])
	}
	if counts[scene.KindBuilding] != 2 {
		t.Errorf("buildings: expected 2, got %d", counts[scene.KindBuilding])
	}
	if counts[scene.KindNPC] != 1 {
		t.Errorf("npcs: expected 1, got %d", counts[scene.KindNPC])
	}
}

func TestPopulateDeterministic(t *testing.T) {
	hf := testField(t)
	cfg := DefaultSpawnConfig()

	a := Populate(scene.NewScene(), hf, cfg)
	b := Populate(scene.NewScene(), hf, cfg)

	if len(a.Children) != len(b.Children) {
		t.Fatalf("spawn counts differ: %d vs %d", len(a.Children), len(b.Children))
	}
	for i := range a.Children {
		pa := a.Children[i].Transform.Position
		pb := b.Children[i].Transform.Position
		if pa != pb {
			t.Fatalf("spawn %d: expected identical position for same seed, got %v and %v", i, pa, pb)
		}
	}
}

func TestPopulateStaysInsideMargin(t *testing.T) {
	hf := testField(t)
	cfg := DefaultSpawnConfig()
	group := Populate(scene.NewScene(), hf, cfg)

	limit := hf.Size/2 - cfg.Margin + 0.001
	for _, n := range group.Children {
		p := n.Transform.Position
		if p.X() < -limit || p.X() > limit || p.Z() < -limit || p.Z() > limit {
			t.Errorf("%s at %v: outside spawn margin %v", n.Name, p, limit)
		}
	}
}

func TestPopulateSitsOnTerrain(t *testing.T) {
	hf := testField(t)
	group := Populate(scene.NewScene(), hf, SpawnConfig{Trees: 10, Margin: 20, Seed: 3})

	for _, n := range group.Children {
		p := n.Transform.Position
		h := hf.HeightAt(p.X(), p.Z())
		if p.Y() != h {
			t.Errorf("%s: expected base at terrain height %v, got %v", n.Name, h, p.Y())
		}
	}
}
