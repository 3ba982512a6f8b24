package platform

import (
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/tessline/engine/core"
)

var (
	// ErrWindowing covers GLFW initialization and window/context creation.
	ErrWindowing = errors.New("windowing error")
	// ErrGLInit is returned when the GL function pointers cannot be loaded.
	ErrGLInit = errors.New("gl init error")
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: glfw init: %v", ErrWindowing, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.RedBits, cfg.ColorBits[0])
	glfw.WindowHint(glfw.GreenBits, cfg.ColorBits[1])
	glfw.WindowHint(glfw.BlueBits, cfg.ColorBits[2])
	glfw.WindowHint(glfw.AlphaBits, cfg.ColorBits[3])
	glfw.WindowHint(glfw.DepthBits, cfg.DepthBits)
	glfw.WindowHint(glfw.StencilBits, cfg.StencilBits)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	if cfg.DebugContext {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if cfg.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	// Mac only hands out core contexts that are forward-compatible.
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrWindowing, err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", ErrGLInit, err)
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	// Some loaders leave a stale error behind; start the first frame clean.
	for gl.GetError() != gl.NO_ERROR {
	}

	gw := &GLFWWindow{w: win, onEv: onEvent}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		gw.emit(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// Destroy closes the window and releases GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeySpace:
		return core.KeySpace
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
