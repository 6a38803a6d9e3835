package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"world-engine/core"
	"world-engine/internal/telemetry"
	"world-engine/nav"
	"world-engine/optimize"
	"world-engine/renderer"
	"world-engine/scene"
	"world-engine/terrain"
	"world-engine/world"
)

func main() {
	configPath := flag.String("config", "explorer.toml", "path to the TOML config file")
	modelPath := flag.String("model", "", "optional .glb/.gltf model to drop into the scene")
	flag.Parse()

	cfg, err := core.LoadAppConfig(*configPath)
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		return
	}

	cfg.Window.Title = "World Explorer"
	window, err := core.NewWindow(cfg.Window)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		return
	}
	defer window.Destroy()

	engine, err := renderer.New(window)
	if err != nil {
		fmt.Printf("Failed to create renderer: %v\n", err)
		return
	}
	defer engine.Destroy()

	// ── Scene setup ───────────────────────────────────────────────────────────
	s := scene.NewScene()

	width, height := window.GetFramebufferSize()
	camera := scene.NewCamera(mgl32.DegToRad(60), float32(width)/float32(height), 0.1, 1000)
	s.SetCamera(camera)

	field, err := terrain.Generate(cfg.Terrain.Size, cfg.Terrain.Segments, cfg.Terrain.Seed)
	if err != nil {
		fmt.Printf("Terrain error: %v\n", err)
		return
	}
	terrainNode := scene.NewNode("Terrain")
	terrainNode.Mesh = field.BuildMesh()
	s.AddNode(terrainNode)

	objects := world.Populate(s, field, world.DefaultSpawnConfig())
	fmt.Printf("Spawned %d objects\n", len(objects.Children))

	if *modelPath != "" {
		result, err := scene.LoadGLTF(*modelPath)
		if err != nil {
			fmt.Printf("Model load error (continuing without it): %v\n", err)
		} else {
			for _, root := range result.Roots {
				pos := root.Transform.Position
				root.SetPosition(mgl32.Vec3{pos.X(), field.HeightAt(pos.X(), pos.Z()), pos.Z()})
				s.AddNode(root)
			}
			fmt.Printf("Loaded model %q (%d roots)\n", *modelPath, len(result.Roots))
		}
	}

	// ── Optimization ──────────────────────────────────────────────────────────
	optimizer := optimize.NewOptimizer(engine, window.ContentScale())
	optimizer.SetDrawStatsSource(engine)
	optimizer.Manage(objects)

	// ── Navigation ────────────────────────────────────────────────────────────
	viewer := nav.NewController(field, s, terrainNode)
	viewer.BaseSpeed = cfg.Navigation.BaseSpeed
	viewer.RunMultiplier = cfg.Navigation.RunMultiplier
	viewer.Sensitivity = cfg.Navigation.Sensitivity

	window.OnCursorMove(func(dx, dy float64) {
		if window.CursorCaptured() || viewer.Mode() == nav.ThirdPerson {
			viewer.Look(float32(dx), float32(dy))
		}
	})
	window.OnMousePress(func(button int) {
		if !window.CursorCaptured() {
			window.CaptureCursor()
		}
	})

	// ── Day/night ─────────────────────────────────────────────────────────────
	dayNight := world.NewDayNight()
	dayNight.Apply(s)

	// ── Telemetry ─────────────────────────────────────────────────────────────
	var stats *telemetry.Server
	if cfg.Telemetry.Enabled {
		stats = telemetry.NewServer(cfg.Telemetry.Addr)
		stats.Start()
		defer stats.Stop()
	}

	fmt.Println("==========================================")
	fmt.Println("  World Explorer")
	fmt.Println("==========================================")
	fmt.Println("")
	fmt.Println("MOVEMENT:")
	fmt.Println("  W / S          - Forward / backward")
	fmt.Println("  A / D          - Strafe left / right")
	fmt.Println("  Shift          - Run")
	fmt.Println("  F              - Toggle fly mode")
	fmt.Println("  Space / Ctrl   - Ascend / descend (fly mode)")
	fmt.Println("  Click          - Capture mouse, move to look")
	fmt.Println("  V              - First/third person view")
	fmt.Println("")
	fmt.Println("OPTIMIZATION:")
	fmt.Println("  P              - Pause / resume optimizer")
	fmt.Println("  L              - Toggle distance detail levels")
	fmt.Println("  C              - Toggle frustum culling")
	fmt.Println("  Tab            - Force detail re-evaluation")
	fmt.Println("")
	fmt.Println("WORLD:")
	fmt.Println("  N              - Pause / resume day/night cycle")
	fmt.Println("  , / .          - Slow down / speed up the cycle")
	fmt.Println("")
	fmt.Println("EXIT: ESC (first press releases the mouse)")
	fmt.Println("==========================================")
	fmt.Println("")

	// Debounce state for toggle keys
	flyKeyWasDown := false
	viewKeyWasDown := false
	pauseKeyWasDown := false
	lodKeyWasDown := false
	cullKeyWasDown := false
	forceKeyWasDown := false
	dnKeyWasDown := false
	escKeyWasDown := false

	frameCount := 0
	lastTitle := time.Now()
	lastFrame := time.Now()
	lastTelemetry := time.Now()
	deltaTime := float32(0.016)
	lastW, lastH := width, height

	for !window.ShouldClose() {
		window.PollEvents()

		if fbW, fbH := window.GetFramebufferSize(); fbW != lastW || fbH != lastH {
			lastW, lastH = fbW, fbH
			camera.UpdateAspectRatio(float32(fbW), float32(fbH))
			engine.Resize()
		}

		// ESC: release the mouse first, close on the next press
		escDown := window.IsKeyPressed(core.KeyEscape)
		if escDown && !escKeyWasDown {
			if window.CursorCaptured() {
				window.ReleaseCursor()
			} else {
				break
			}
		}
		escKeyWasDown = escDown

		// F: fly mode
		fDown := window.IsKeyPressed(core.KeyF)
		if fDown && !flyKeyWasDown {
			flying := viewer.ToggleFly()
			fmt.Printf("[Fly] %s\n", map[bool]string{true: "ON", false: "OFF"}[flying])
		}
		flyKeyWasDown = fDown

		// V: first/third person
		vDown := window.IsKeyPressed(core.KeyV)
		if vDown && !viewKeyWasDown {
			fmt.Printf("[View] %s\n", viewer.ToggleMode())
		}
		viewKeyWasDown = vDown

		// P: pause/resume the optimizer
		pDown := window.IsKeyPressed(core.KeyP)
		if pDown && !pauseKeyWasDown {
			paused := optimizer.TogglePause()
			fmt.Printf("[Optimizer] %s\n", map[bool]string{true: "PAUSED", false: "RUNNING"}[paused])
		}
		pauseKeyWasDown = pDown

		// L: toggle distance detail levels
		lDown := window.IsKeyPressed(core.KeyL)
		if lDown && !lodKeyWasDown {
			enabled, _ := optimizer.ToggleOptimization("lod", s)
			fmt.Printf("[LOD] %s\n", map[bool]string{true: "ON", false: "OFF"}[enabled])
		}
		lodKeyWasDown = lDown

		// C: toggle frustum culling
		cDown := window.IsKeyPressed(core.KeyC)
		if cDown && !cullKeyWasDown {
			enabled, _ := optimizer.ToggleOptimization("culling", s)
			fmt.Printf("[Culling] %s\n", map[bool]string{true: "ON", false: "OFF"}[enabled])
		}
		cullKeyWasDown = cDown

		// Tab: force a detail pass
		tabDown := window.IsKeyPressed(core.KeyTab)
		if tabDown && !forceKeyWasDown {
			optimizer.ForceLODUpdate(camera)
			fmt.Println("[LOD] forced update")
		}
		forceKeyWasDown = tabDown

		// N: pause/resume the day/night cycle
		nDown := window.IsKeyPressed(core.KeyN)
		if nDown && !dnKeyWasDown {
			dayNight.Active = !dayNight.Active
			fmt.Printf("[DayNight] %s\n", map[bool]string{true: "RUNNING", false: "PAUSED"}[dayNight.Active])
		}
		dnKeyWasDown = nDown

		// Comma/Period: slow down / speed up the cycle (larger Speed = slower)
		if window.IsKeyPressed(core.KeyComma) {
			dayNight.Speed += 20.0 * deltaTime
			if dayNight.Speed > 600 {
				dayNight.Speed = 600
			}
		}
		if window.IsKeyPressed(core.KeyPeriod) {
			dayNight.Speed -= 20.0 * deltaTime
			if dayNight.Speed < 10 {
				dayNight.Speed = 10
			}
		}

		// Movement intent from the keyboard
		intent := nav.Intent{
			Forward: window.IsKeyPressed(core.KeyW),
			Back:    window.IsKeyPressed(core.KeyS),
			Left:    window.IsKeyPressed(core.KeyA),
			Right:   window.IsKeyPressed(core.KeyD),
			Up:      window.IsKeyPressed(core.KeySpace),
			Down:    window.IsKeyPressed(core.KeyLeftControl),
			Run:     window.IsKeyPressed(core.KeyLeftShift),
		}

		// Move the viewer before culling and detail selection so both see
		// this frame's camera pose.
		viewer.Update(intent, deltaTime)
		viewer.ApplyTo(camera)

		dayNight.Update(deltaTime)
		dayNight.Apply(s)

		optimizer.Update(s, camera, float64(deltaTime)*1000)

		sun := dayNight.Sun()
		engine.SetSun(sun.Direction, sun.Color, sun.Intensity, s.Ambient)
		engine.RenderFrame(s)
		window.SwapBuffers()

		// Timing
		now := time.Now()
		deltaTime = float32(now.Sub(lastFrame).Seconds())
		lastFrame = now
		frameCount++

		// Window title once per second
		if now.Sub(lastTitle).Seconds() >= 1.0 {
			st := optimizer.Stats()
			pos := viewer.Position
			window.SetTitle(fmt.Sprintf("World Explorer | FPS: %d | (%.1f, %.1f, %.1f) | vis %d cull %d | scale %.2f",
				frameCount, pos.X(), pos.Y(), pos.Z(),
				st.VisibleObjects, st.CulledObjects, st.ResolutionScale))
			if frameCount%300 == 0 || st.AverageFPS > 0 {
				fmt.Printf("[%s] FPS %.1f | vis %d cull %d | lod %d pooled %d | draws %d tris %d\n",
					dayNight.Clock(), st.AverageFPS,
					st.VisibleObjects, st.CulledObjects,
					st.LODObjectCount, st.PooledObjectCount,
					st.DrawCalls, st.Triangles)
			}
			frameCount = 0
			lastTitle = now
		}

		// Telemetry twice a second
		if stats != nil && now.Sub(lastTelemetry).Seconds() >= 0.5 {
			stats.Publish(telemetry.Snapshot{
				Stats:  optimizer.Stats(),
				Viewer: viewer.Snapshot(),
				Clock:  dayNight.Clock(),
				Meshes: telemetry.CollectMeshInfo(s),
			})
			lastTelemetry = now
		}
	}

	fmt.Println("Exiting...")
}
