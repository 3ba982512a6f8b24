package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hubastard/tessline/engine/core"
	glbackend "github.com/hubastard/tessline/engine/gfx/gl"
	"github.com/hubastard/tessline/engine/platform"
)

type App struct {
	r *glbackend.RendererGL
}

func (a *App) OnStart(e *core.Engine) error {
	r, ok := e.Renderer.(*glbackend.RendererGL)
	if !ok {
		return fmt.Errorf("unsupported renderer %T", e.Renderer)
	}
	a.r = r
	return nil
}

func (a *App) OnRender(e *core.Engine) error { return a.r.DrawPatches() }

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	log.Printf("rendered %d frames in %s", e.Frames(), e.Uptime().Round(time.Millisecond))
}

func main() {
	cfg := core.DefaultConfig()
	if dir := os.Getenv("TESSLINE_SHADER_DIR"); dir != "" {
		cfg.ShaderDir = dir
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(&App{}, cfg, newWindow, newRenderer); err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a startup failure to the process status: -1 when no window
// could be made, 1 for GL loader and shader failures.
func exitCode(err error) int {
	if errors.Is(err, platform.ErrWindowing) {
		return -1
	}
	return 1
}
