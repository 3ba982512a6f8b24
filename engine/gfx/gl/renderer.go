package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/hubastard/tessline/engine/assets"
	"github.com/hubastard/tessline/engine/core"
	"github.com/hubastard/tessline/engine/gfx/shader"
)

// RendererGL holds the tessellation program and an attribute-less VAO. The
// control points come from gl_VertexID in the vertex stage.
type RendererGL struct {
	win     core.Window
	cfg     core.Config
	program *shader.Program
	vao     uint32
}

func NewRendererGL(win core.Window, cfg core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, cfg: cfg}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	prog, err := shader.Load(Device{}, assets.NewLoader(r.cfg.ShaderDir), shader.DefaultFiles)
	if err != nil {
		return fmt.Errorf("build tessellation program: %w", err)
	}
	r.program = prog

	// Core profile refuses draws without a bound VAO, even an empty one.
	gl.GenVertexArrays(1, &r.vao)
	return nil
}

func (r *RendererGL) Shutdown() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	r.program.Release()
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.ClearDepth(r.cfg.ClearDepth)
	gl.ClearStencil(r.cfg.ClearStencil)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// DrawPatches submits one patch of PatchVertices control points and reports
// any GL error raised by the submission.
func (r *RendererGL) DrawPatches() error {
	gl.UseProgram(r.program.Handle())
	gl.PatchParameteri(gl.PATCH_VERTICES, r.cfg.PatchVertices)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.PATCHES, 0, r.cfg.PatchVertices)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return GLError(code)
	}
	return nil
}
