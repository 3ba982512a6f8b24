package core

import (
	"log"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
// Any startup failure is returned before the first frame.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		app.OnEvent(eng, ev)
		switch e := ev.(type) {
		case EventResize:
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		case EventKey:
			if cfg.CloseOnEscape && e.Key == KeyEscape && e.Down && !e.Repeat {
				win.RequestClose()
			}
		}
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}

	clear := cfg.ClearColor
	for !win.ShouldClose() {
		rend.Clear(clear.RGBA())

		// A bad frame should not end the session.
		if err := app.OnRender(eng); err != nil {
			log.Printf("frame %d: %v", eng.frames, err)
		}
		eng.frames++

		win.SwapBuffers()
		win.PollEvents()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}
