package optimize

import (
	"testing"

	"world-engine/scene"
)

func TestBuildLevelsReducesSegments(t *testing.T) {
	b := NewDetailLevelBuilder()
	m := scene.CreateSphere(1, 32, 16)

	levels := b.BuildLevels(m)
	if len(levels) != 3 {
		t.Fatalf("level count: expected 3, got %d", len(levels))
	}
	if levels[0] != m {
		t.Error("expected level 0 to be the original mesh")
	}

	for i := 1; i < len(levels); i++ {
		if len(levels[i].Vertices) >= len(levels[i-1].Vertices) {
			t.Errorf("level %d: expected fewer vertices than level %d, got %d >= %d",
				i, i-1, len(levels[i].Vertices), len(levels[i-1].Vertices))
		}
	}
}

func TestBuildLevelsFloorsSegments(t *testing.T) {
	b := NewDetailLevelBuilder()
	m := scene.CreateSphere(1, 4, 3)

	levels := b.BuildLevels(m)
	for i := 1; i < len(levels); i++ {
		p := levels[i].Params
		if p.RadialSegments < 3 {
			t.Errorf("level %d: radial segments below floor: %d", i, p.RadialSegments)
		}
		if p.Rings < 2 {
			t.Errorf("level %d: rings below floor: %d", i, p.Rings)
		}
	}
}

func TestBuildLevelsWithoutParams(t *testing.T) {
	b := NewDetailLevelBuilder()
	m := scene.CreateSphere(1, 16, 8)
	m.Params = nil // as for loaded geometry

	levels := b.BuildLevels(m)
	if len(levels) != 1 {
		t.Errorf("expected only the original mesh for parameterless geometry, got %d levels", len(levels))
	}
}

func TestBuildLevelsStripsDetailMaps(t *testing.T) {
	b := NewDetailLevelBuilder()
	m := scene.CreateSphere(1, 32, 16)
	m.Material = scene.DefaultMaterial()
	m.Material.NormalTexture = &scene.Texture{Name: "n"}
	m.Material.MetallicRoughnessTexture = &scene.Texture{Name: "mr"}
	m.Material.AlbedoTexture = &scene.Texture{Name: "a"}

	levels := b.BuildLevels(m)
	last := levels[len(levels)-1] // factor 0.25, below the strip cutoff
	if last.Material.NormalTexture != nil {
		t.Error("expected normal map stripped on the lowest level")
	}
	if last.Material.MetallicRoughnessTexture != nil {
		t.Error("expected metallic-roughness map stripped on the lowest level")
	}
	if last.Material.AlbedoTexture == nil {
		t.Error("expected albedo map kept on the lowest level")
	}
	if m.Material.NormalTexture == nil {
		t.Error("expected original material untouched")
	}
}

func TestImpostorPooledByKindAndSize(t *testing.T) {
	b := NewDetailLevelBuilder()

	a := scene.NewNode("a")
	a.Kind = scene.KindTree
	a.Mesh = scene.CreateCylinder(0.5, 4, 8)

	c := scene.NewNode("c")
	c.Kind = scene.KindTree
	c.Mesh = scene.CreateCylinder(0.5, 4, 8)

	impA := b.Impostor(a)
	impC := b.Impostor(c)
	if impA != impC {
		t.Error("expected same-kind same-size nodes to share one impostor")
	}
	if b.PooledImpostorCount() != 1 {
		t.Errorf("pool size: expected 1, got %d", b.PooledImpostorCount())
	}

	r := scene.NewNode("r")
	r.Kind = scene.KindRock
	r.Mesh = scene.CreateSphere(2, 8, 4)
	if b.Impostor(r) == impA {
		t.Error("expected a different impostor for a different kind")
	}
	if b.PooledImpostorCount() != 2 {
		t.Errorf("pool size: expected 2, got %d", b.PooledImpostorCount())
	}
}

func TestImpostorUnknownKindFallsBack(t *testing.T) {
	b := NewDetailLevelBuilder()
	n := scene.NewNode("weird")
	n.Kind = scene.Kind(99)
	n.Mesh = scene.CreateCube(1)

	imp := b.Impostor(n)
	if imp == nil {
		t.Fatal("expected an impostor for an unknown kind")
	}
	if !imp.Billboard {
		t.Error("expected impostor to be a billboard")
	}
}
