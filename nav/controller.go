package nav

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"world-engine/scene"
	"world-engine/terrain"
)

// Mode selects the camera rig.
type Mode int

const (
	FirstPerson Mode = iota
	ThirdPerson
)

func (m Mode) String() string {
	if m == ThirdPerson {
		return "third-person"
	}
	return "first-person"
}

const (
	eyeHeight   = 2.0
	maxDelta    = 0.1 // seconds; caps movement after a stall or tab-out
	pitchLimit  = math32.Pi/2 - 0.01
	probeHeight = 50.0 // how far above the viewer the stand probe may reach

	thirdPersonBack = 8.0
	thirdPersonUp   = 3.0
)

// Intent is the movement input for one frame, decoupled from key bindings.
type Intent struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Run     bool
}

// Info is a snapshot of the viewer state for HUD and telemetry.
type Info struct {
	Position mgl32.Vec3 `json:"position"`
	Mode     string     `json:"mode"`
	Flying   bool       `json:"flying"`
	IsMoving bool       `json:"isMoving"`
}

// Controller moves a viewer over the terrain and drives the scene camera.
// In walking mode the viewer sticks to the ground (terrain or whatever
// object the downward probe finds); in flying mode Up/Down move vertically
// but the viewer still cannot sink below the ground.
type Controller struct {
	Position mgl32.Vec3
	Yaw      float32 // radians, 0 faces -Z
	Pitch    float32

	BaseSpeed     float32
	RunMultiplier float32
	Sensitivity   float32

	mode   Mode
	flying bool
	moving bool

	field       *terrain.HeightField
	world       *scene.Scene
	terrainNode *scene.Node
}

// NewController creates a viewer standing at the origin. terrainNode is
// excluded from the downward object probe so the heightfield lookup stays
// authoritative for the ground.
func NewController(field *terrain.HeightField, world *scene.Scene, terrainNode *scene.Node) *Controller {
	c := &Controller{
		BaseSpeed:     10,
		RunMultiplier: 2,
		Sensitivity:   0.002,
		field:         field,
		world:         world,
		terrainNode:   terrainNode,
	}
	c.Position = mgl32.Vec3{0, c.groundHeight(0, 0) + eyeHeight, 0}
	return c
}

// ToggleMode switches between first- and third-person and returns the new mode.
func (c *Controller) ToggleMode() Mode {
	if c.mode == FirstPerson {
		c.mode = ThirdPerson
	} else {
		c.mode = FirstPerson
	}
	return c.mode
}

func (c *Controller) Mode() Mode { return c.mode }

// ToggleFly switches between walking and flying and returns the new state.
func (c *Controller) ToggleFly() bool {
	c.flying = !c.flying
	return c.flying
}

func (c *Controller) Flying() bool { return c.flying }

// Look applies a mouse delta to the view angles. Pitch is clamped short of
// straight up/down so the view vector never degenerates.
func (c *Controller) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -pitchLimit, pitchLimit)
}

// Update advances the viewer by one frame. dt is in seconds and is capped so
// a long stall cannot teleport the viewer.
func (c *Controller) Update(in Intent, dt float32) {
	if dt > maxDelta {
		dt = maxDelta
	}
	if dt < 0 {
		dt = 0
	}

	speed := c.BaseSpeed
	if in.Run {
		speed *= c.RunMultiplier
	}
	step := speed * dt

	forward := mgl32.Vec3{math32.Sin(c.Yaw), 0, -math32.Cos(c.Yaw)}
	right := mgl32.Vec3{math32.Cos(c.Yaw), 0, math32.Sin(c.Yaw)}

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Back {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if move.Len() > 0 {
		move = move.Normalize().Mul(step)
	}
	c.Position = c.Position.Add(move)

	if c.flying {
		// Ascend wins when both vertical inputs are held
		switch {
		case in.Up:
			c.Position[1] += step
		case in.Down:
			c.Position[1] -= step
		}
	}

	floor := c.groundHeight(c.Position.X(), c.Position.Z()) + eyeHeight
	if c.flying {
		if c.Position.Y() < floor {
			c.Position[1] = floor
		}
	} else {
		c.Position[1] = floor
	}

	c.moving = move.Len() > 0 || (c.flying && (in.Up || in.Down))
}

// groundHeight returns the stand height at (x, z): the terrain sample, raised
// to any walkable object surface the downward probe finds.
func (c *Controller) groundHeight(x, z float32) float32 {
	h := float32(0)
	if c.field != nil {
		h = c.field.HeightAt(x, z)
	}
	if c.world != nil {
		origin := mgl32.Vec3{x, h + probeHeight, z}
		if y, ok := scene.ProbeDown(c.world, origin, c.terrainNode, probeHeight*2); ok && y > h {
			h = y
		}
	}
	return h
}

// ViewDirection returns the unit view vector for the current yaw and pitch.
func (c *Controller) ViewDirection() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		math32.Sin(c.Yaw) * cp,
		math32.Sin(c.Pitch),
		-math32.Cos(c.Yaw) * cp,
	}
}

// ApplyTo positions the camera for the current mode. First person puts the
// camera at the viewer's eyes; third person hangs it behind and above, aimed
// just over the viewer's head.
func (c *Controller) ApplyTo(cam *scene.Camera) {
	dir := c.ViewDirection()
	up := mgl32.Vec3{0, 1, 0}

	if c.mode == FirstPerson {
		cam.SetPosition(c.Position)
		cam.LookAt(c.Position.Add(dir), up)
		return
	}

	back := mgl32.Vec3{math32.Sin(c.Yaw), 0, -math32.Cos(c.Yaw)}.Mul(-thirdPersonBack)
	camPos := c.Position.Add(back).Add(mgl32.Vec3{0, thirdPersonUp, 0})

	// Keep the chase camera out of the ground
	floor := c.groundHeight(camPos.X(), camPos.Z()) + 0.5
	if camPos.Y() < floor {
		camPos[1] = floor
	}

	cam.SetPosition(camPos)
	cam.LookAt(c.Position.Add(mgl32.Vec3{0, 1, 0}), up)
}

// Snapshot returns the current viewer state.
func (c *Controller) Snapshot() Info {
	return Info{
		Position: c.Position,
		Mode:     c.mode.String(),
		Flying:   c.flying,
		IsMoving: c.moving,
	}
}
