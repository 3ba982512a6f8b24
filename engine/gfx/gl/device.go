package glbackend

import (
	"strings"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/hubastard/tessline/engine/gfx/shader"
)

var glStages = map[shader.Kind]uint32{
	shader.Vertex:      gl.VERTEX_SHADER,
	shader.Fragment:    gl.FRAGMENT_SHADER,
	shader.TessControl: gl.TESS_CONTROL_SHADER,
	shader.TessEval:    gl.TESS_EVALUATION_SHADER,
}

// Device implements shader.Device on the current GL context.
type Device struct{}

func (Device) CreateShader(kind shader.Kind) uint32 { return gl.CreateShader(glStages[kind]) }

func (Device) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
}

func (Device) CompileShader(sh uint32) { gl.CompileShader(sh) }

func (Device) ShaderCompiled(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(sh uint32, max int) string {
	buf := strings.Repeat("\x00", max+1)
	var n int32
	gl.GetShaderInfoLog(sh, int32(max), &n, gl.Str(buf))
	return buf[:n]
}

func (Device) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

func (Device) CreateProgram() uint32        { return gl.CreateProgram() }
func (Device) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }
func (Device) LinkProgram(prog uint32)      { gl.LinkProgram(prog) }
func (Device) DeleteProgram(prog uint32)    { gl.DeleteProgram(prog) }

func (Device) ProgramLinked(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(prog uint32, max int) string {
	buf := strings.Repeat("\x00", max+1)
	var n int32
	gl.GetProgramInfoLog(prog, int32(max), &n, gl.Str(buf))
	return buf[:n]
}
