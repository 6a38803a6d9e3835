package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	captured bool
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "World Engine",
		Resizable: true,
		VSync:     true,
	}
}

func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// ContentScale returns the window's content scale (device pixel ratio).
func (w *Window) ContentScale() float32 {
	sx, _ := w.Handle.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return sx
}

// CaptureCursor hides the cursor and locks it to the window, the desktop
// equivalent of pointer lock.
func (w *Window) CaptureCursor() {
	w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	w.captured = true
}

// ReleaseCursor restores the normal cursor.
func (w *Window) ReleaseCursor() {
	w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	w.captured = false
}

func (w *Window) CursorCaptured() bool {
	return w.captured
}

// CursorMoveCallback receives raw cursor deltas while events are polled.
type CursorMoveCallback func(dx, dy float64)

// OnCursorMove registers cb to receive per-event cursor deltas.
func (w *Window) OnCursorMove(cb CursorMoveCallback) {
	first := true
	var lastX, lastY float64
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		if first {
			lastX, lastY = x, y
			first = false
			return
		}
		cb(x-lastX, y-lastY)
		lastX, lastY = x, y
	})
}

// MouseButtonCallback fires on press with the button index (0 = left).
type MouseButtonCallback func(button int)

func (w *Window) OnMousePress(cb MouseButtonCallback) {
	w.Handle.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			cb(int(button))
		}
	})
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeySpace       = int(glfw.KeySpace)
	KeyA           = int(glfw.KeyA)
	KeyC           = int(glfw.KeyC)
	KeyD           = int(glfw.KeyD)
	KeyF           = int(glfw.KeyF)
	KeyL           = int(glfw.KeyL)
	KeyP           = int(glfw.KeyP)
	KeyS           = int(glfw.KeyS)
	KeyV           = int(glfw.KeyV)
	KeyW           = int(glfw.KeyW)
	KeyEscape      = int(glfw.KeyEscape)
	KeyTab         = int(glfw.KeyTab)
	KeyLeftShift   = int(glfw.KeyLeftShift)
	KeyLeftControl = int(glfw.KeyLeftControl)
	KeyComma       = int(glfw.KeyComma)
	KeyPeriod      = int(glfw.KeyPeriod)
	KeyN           = int(glfw.KeyN)
)
