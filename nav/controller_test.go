package nav

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/scene"
	"world-engine/terrain"
)

// flatField builds a terrain where every sample sits at the given height.
func flatField(t *testing.T, height float32) *terrain.HeightField {
	t.Helper()
	n := 9 // 8 segments
	samples := make([]float32, n*n)
	for i := range samples {
		samples[i] = height
	}
	hf, err := terrain.NewFromSamples(100, 8, samples)
	if err != nil {
		t.Fatalf("NewFromSamples: %v", err)
	}
	return hf
}

func TestViewerSnapsDownToGround(t *testing.T) {
	c := NewController(flatField(t, 3), nil, nil)
	c.Position = mgl32.Vec3{0, 10, 0}

	c.Update(Intent{}, 0.016)

	if math32.Abs(c.Position.Y()-5) > 0.001 {
		t.Errorf("Y: expected terrain 3 + eye height 2 = 5, got %v", c.Position.Y())
	}
}

func TestViewerRaisedAboveGround(t *testing.T) {
	c := NewController(flatField(t, 3), nil, nil)
	c.Position = mgl32.Vec3{0, 4, 0}

	c.Update(Intent{}, 0.016)

	if math32.Abs(c.Position.Y()-5) > 0.001 {
		t.Errorf("Y: expected viewer raised to 5, got %v", c.Position.Y())
	}
}

func TestFlyingNeverSinksBelowGround(t *testing.T) {
	c := NewController(flatField(t, 3), nil, nil)
	c.ToggleFly()
	c.Position = mgl32.Vec3{0, 20, 0}

	for i := 0; i < 200; i++ {
		c.Update(Intent{Down: true}, 0.016)
	}

	if c.Position.Y() < 5 {
		t.Errorf("Y: expected floor at 5 while descending, got %v", c.Position.Y())
	}
}

func TestAscendWinsVerticalTie(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)
	c.ToggleFly()
	before := c.Position.Y()

	c.Update(Intent{Up: true, Down: true}, 0.016)

	if c.Position.Y() <= before {
		t.Errorf("expected ascend to win the tie, Y went %v -> %v", before, c.Position.Y())
	}
}

func TestDeltaTimeCapped(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)
	start := c.Position

	// A 5 second stall must move the viewer as if only 0.1s passed.
	c.Update(Intent{Forward: true}, 5.0)

	moved := c.Position.Sub(start).Len()
	expected := c.BaseSpeed * 0.1
	if math32.Abs(moved-expected) > 0.001 {
		t.Errorf("moved %v, expected capped step %v", moved, expected)
	}
}

func TestRunMultiplierDoublesSpeed(t *testing.T) {
	walk := NewController(flatField(t, 0), nil, nil)
	run := NewController(flatField(t, 0), nil, nil)

	walk.Update(Intent{Forward: true}, 0.05)
	run.Update(Intent{Forward: true, Run: true}, 0.05)

	walkDist := walk.Position.Sub(mgl32.Vec3{0, walk.Position.Y(), 0}).Len()
	runDist := run.Position.Sub(mgl32.Vec3{0, run.Position.Y(), 0}).Len()
	if math32.Abs(runDist-walkDist*2) > 0.001 {
		t.Errorf("run distance: expected %v, got %v", walkDist*2, runDist)
	}
}

func TestDiagonalMovementNotFaster(t *testing.T) {
	straight := NewController(flatField(t, 0), nil, nil)
	diagonal := NewController(flatField(t, 0), nil, nil)

	straight.Update(Intent{Forward: true}, 0.05)
	diagonal.Update(Intent{Forward: true, Right: true}, 0.05)

	sd := straight.Position.Sub(mgl32.Vec3{0, straight.Position.Y(), 0}).Len()
	dd := diagonal.Position.Sub(mgl32.Vec3{0, diagonal.Position.Y(), 0}).Len()
	if math32.Abs(sd-dd) > 0.001 {
		t.Errorf("diagonal distance %v differs from straight %v", dd, sd)
	}
}

func TestStandOnObjectViaProbe(t *testing.T) {
	world := scene.NewScene()
	platform := scene.NewNode("platform")
	platform.Mesh = scene.CreateCube(4)
	platform.SetPosition(mgl32.Vec3{0, 8, 0})
	world.AddNode(platform)

	c := NewController(flatField(t, 0), world, nil)
	c.Position = mgl32.Vec3{0, 30, 0}
	c.Update(Intent{}, 0.016)

	// Cube centred at y=8 with edge 4: top surface at 10, eye height 2
	if math32.Abs(c.Position.Y()-12) > 0.01 {
		t.Errorf("Y: expected to stand on platform at 12, got %v", c.Position.Y())
	}
}

func TestStandOnCulledPlatform(t *testing.T) {
	world := scene.NewScene()
	platform := scene.NewNode("platform")
	platform.Mesh = scene.CreateCube(4)
	platform.SetPosition(mgl32.Vec3{0, 8, 0})
	// Frustum-hidden, as when the viewer looks straight up
	platform.Vis.Culling = false
	world.AddNode(platform)

	c := NewController(flatField(t, 0), world, nil)
	c.Position = mgl32.Vec3{0, 30, 0}
	c.Update(Intent{}, 0.016)

	if math32.Abs(c.Position.Y()-12) > 0.01 {
		t.Errorf("Y: expected to stand on platform at 12, got %v", c.Position.Y())
	}
}

func TestProbeExcludesTerrainNode(t *testing.T) {
	world := scene.NewScene()
	ground := scene.NewNode("terrain")
	ground.Mesh = scene.CreateCube(4)
	ground.SetPosition(mgl32.Vec3{0, 8, 0})
	world.AddNode(ground)

	c := NewController(flatField(t, 0), world, ground)
	c.Position = mgl32.Vec3{0, 30, 0}
	c.Update(Intent{}, 0.016)

	if math32.Abs(c.Position.Y()-2) > 0.01 {
		t.Errorf("Y: expected heightfield ground at 2, got %v", c.Position.Y())
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)
	c.Look(0, -1e6) // drag far up
	if c.Pitch >= math32.Pi/2 {
		t.Errorf("pitch: expected clamp below pi/2, got %v", c.Pitch)
	}
	c.Look(0, 1e6) // drag far down
	if c.Pitch <= -math32.Pi/2 {
		t.Errorf("pitch: expected clamp above -pi/2, got %v", c.Pitch)
	}
}

func TestToggleModeRoundTrip(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)
	if c.Mode() != FirstPerson {
		t.Fatalf("initial mode: expected first-person, got %v", c.Mode())
	}
	if m := c.ToggleMode(); m != ThirdPerson {
		t.Errorf("expected third-person after toggle, got %v", m)
	}
	if m := c.ToggleMode(); m != FirstPerson {
		t.Errorf("expected first-person after second toggle, got %v", m)
	}
}

func TestThirdPersonCameraBehindViewer(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)
	c.ToggleMode()

	cam := scene.NewCamera(mgl32.DegToRad(60), 16.0/9.0, 0.1, 500)
	c.ApplyTo(cam)

	// Yaw 0 faces -Z, so the chase camera sits at +Z behind the viewer
	if cam.Position.Z() <= c.Position.Z() {
		t.Errorf("expected camera behind viewer: cam Z %v, viewer Z %v", cam.Position.Z(), c.Position.Z())
	}
	if cam.Position.Y() <= c.Position.Y() {
		t.Errorf("expected camera above viewer: cam Y %v, viewer Y %v", cam.Position.Y(), c.Position.Y())
	}
}

func TestSnapshotReportsMovement(t *testing.T) {
	c := NewController(flatField(t, 0), nil, nil)

	c.Update(Intent{}, 0.016)
	if c.Snapshot().IsMoving {
		t.Error("idle: expected IsMoving false")
	}

	c.Update(Intent{Forward: true}, 0.016)
	info := c.Snapshot()
	if !info.IsMoving {
		t.Error("walking: expected IsMoving true")
	}
	if info.Mode != "first-person" {
		t.Errorf("mode string: expected first-person, got %q", info.Mode)
	}
}
