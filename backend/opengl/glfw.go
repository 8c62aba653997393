package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/vflow"
)

// GLFWInputAdapter records GLFW callbacks into a vflow.InputState.
type GLFWInputAdapter struct {
	window *glfw.Window
	input  *vflow.InputState
	last   float64
}

// NewGLFWInputAdapter installs the window callbacks.
func NewGLFWInputAdapter(window *glfw.Window) *GLFWInputAdapter {
	a := &GLFWInputAdapter{
		window: window,
		input:  vflow.NewInputState(),
		last:   glfw.GetTime(),
	}

	window.SetKeyCallback(a.keyCallback)
	window.SetMouseButtonCallback(a.mouseButtonCallback)
	window.SetScrollCallback(a.scrollCallback)
	window.SetCursorPosCallback(a.cursorPosCallback)

	return a
}

// Update starts a new frame: it clears the per-frame edges, then advances
// key repeat timers. Call it before glfw.PollEvents so the frame's events
// survive until the Navigator reads them.
func (a *GLFWInputAdapter) Update() *vflow.InputState {
	now := glfw.GetTime()
	a.input.Reset()
	a.input.UpdateKeyRepeat(float32(now - a.last))
	a.last = now

	x, y := a.window.GetCursorPos()
	a.input.SetMousePos(float32(x), float32(y))

	a.input.ModCtrl = a.down(glfw.KeyLeftControl, glfw.KeyRightControl)
	a.input.ModShift = a.down(glfw.KeyLeftShift, glfw.KeyRightShift)
	a.input.ModAlt = a.down(glfw.KeyLeftAlt, glfw.KeyRightAlt)

	return a.input
}

// Input returns the current input state.
func (a *GLFWInputAdapter) Input() *vflow.InputState {
	return a.input
}

func (a *GLFWInputAdapter) down(keys ...glfw.Key) bool {
	for _, k := range keys {
		if a.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}

func (a *GLFWInputAdapter) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	k := glfwKey(key)
	if k == vflow.KeyNone {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetKey(k, true)
	case glfw.Release:
		a.input.SetKey(k, false)
	}
}

func (a *GLFWInputAdapter) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	b := glfwMouseButton(button)
	if b < 0 {
		return
	}

	switch action {
	case glfw.Press:
		a.input.SetMouseButton(b, true)
	case glfw.Release:
		a.input.SetMouseButton(b, false)
	}
}

func (a *GLFWInputAdapter) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	// several wheel events can land in one frame
	a.input.SetMouseWheel(a.input.MouseWheelX+float32(xoff), a.input.MouseWheelY+float32(yoff))
}

func (a *GLFWInputAdapter) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	a.input.SetMousePos(float32(xpos), float32(ypos))
}

var glfwKeys = map[glfw.Key]vflow.Key{
	glfw.KeyLeft:     vflow.KeyLeft,
	glfw.KeyRight:    vflow.KeyRight,
	glfw.KeyUp:       vflow.KeyUp,
	glfw.KeyDown:     vflow.KeyDown,
	glfw.KeyPageUp:   vflow.KeyPageUp,
	glfw.KeyPageDown: vflow.KeyPageDown,
	glfw.KeyHome:     vflow.KeyHome,
	glfw.KeyEnd:      vflow.KeyEnd,
	glfw.KeySpace:    vflow.KeySpace,
	glfw.KeyEnter:    vflow.KeyEnter,
	glfw.KeyEscape:   vflow.KeyEscape,
}

func glfwKey(key glfw.Key) vflow.Key {
	if k, ok := glfwKeys[key]; ok {
		return k
	}
	return vflow.KeyNone
}

func glfwMouseButton(button glfw.MouseButton) vflow.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return vflow.MouseButtonLeft
	case glfw.MouseButtonRight:
		return vflow.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return vflow.MouseButtonMiddle
	default:
		return -1
	}
}
