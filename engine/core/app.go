package core

import (
	"time"

	"github.com/hubastard/tessline/engine/colors"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine) error     // called once after window/renderer init; an error aborts startup
	OnRender(e *Engine) error    // called every frame after the clear; errors are logged, not fatal
	OnEvent(e *Engine, ev Event) // input/window events
	OnShutdown(e *Engine)        // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	start    time.Time
	frames   uint64
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }
func (e *Engine) Frames() uint64        { return e.frames }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Renderer owns the GPU objects used to draw a frame.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

// Key/mod enums (subset).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title  string
	Width  int
	Height int
	VSync  bool
	Hidden bool

	// Context and default framebuffer format.
	GLMajor, GLMinor int
	ColorBits        [4]int // RGBA
	DepthBits        int
	StencilBits      int
	DebugContext     bool

	ClearColor   colors.Color
	ClearDepth   float64
	ClearStencil int32

	// ShaderDir is where the stage sources are read from.
	ShaderDir     string
	PatchVertices int32

	CloseOnEscape bool
}

// DefaultConfig is an 800x600 GL 4.2 core window clearing to dark blue.
func DefaultConfig() Config {
	return Config{
		Title:         "TessellationLine",
		Width:         800,
		Height:        600,
		VSync:         true,
		GLMajor:       4,
		GLMinor:       2,
		ColorBits:     [4]int{8, 8, 8, 8},
		DepthBits:     24,
		StencilBits:   0,
		DebugContext:  true,
		ClearColor:    colors.DarkBlue,
		ClearDepth:    1.0,
		ClearStencil:  0,
		ShaderDir:     "shaders",
		PatchVertices: 2,
		CloseOnEscape: true,
	}
}
