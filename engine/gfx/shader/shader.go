// Package shader compiles GLSL stages and links them into GPU programs.
//
// All driver calls go through Device, so the build logic does not depend on a
// live GL context.
package shader

import (
	"errors"
	"fmt"
	"log"
)

// MaxInfoLog bounds the compiler and linker diagnostics kept from the driver.
const MaxInfoLog = 1024

// Kind is a programmable pipeline stage.
type Kind int

const (
	Vertex Kind = iota
	Fragment
	TessControl
	TessEval
)

func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	case TessControl:
		return "tessellation control"
	case TessEval:
		return "tessellation evaluation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Device is the subset of the GL shader API the builder needs.
type Device interface {
	CreateShader(kind Kind) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32, max int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32, max int) string
	DeleteProgram(program uint32)
}

var (
	ErrCompile      = errors.New("shader compile error")
	ErrLink         = errors.New("shader link error")
	ErrMissingStage = errors.New("missing shader stage")
)

// CompileError carries the driver log of a failed stage compile.
type CompileError struct {
	Kind Kind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader: %v\n%s", e.Kind, ErrCompile, e.Log)
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError carries the driver log of a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("%v\n%s", ErrLink, e.Log)
}

func (e *LinkError) Unwrap() error { return ErrLink }

// Stage owns one compiled shader object.
type Stage struct {
	dev    Device
	kind   Kind
	handle uint32
}

func (s *Stage) Kind() Kind     { return s.kind }
func (s *Stage) Handle() uint32 { return s.handle }

// Release deletes the shader object. Safe to call more than once.
func (s *Stage) Release() {
	if s == nil || s.handle == 0 {
		return
	}
	s.dev.DeleteShader(s.handle)
	s.handle = 0
}

// Compile submits src to the driver compiler for the given stage. src may or
// may not carry a trailing NUL.
func Compile(dev Device, src string, kind Kind) (*Stage, error) {
	sh := dev.CreateShader(kind)
	dev.ShaderSource(sh, src)
	dev.CompileShader(sh)

	if !dev.ShaderCompiled(sh) {
		msg := truncateLog(dev.ShaderInfoLog(sh, MaxInfoLog))
		dev.DeleteShader(sh)
		log.Printf("glCompileShader() gets error (%s):\n%s", kind, msg)
		return nil, &CompileError{Kind: kind, Log: msg}
	}
	return &Stage{dev: dev, kind: kind, handle: sh}, nil
}

func truncateLog(s string) string {
	if len(s) > MaxInfoLog {
		s = s[:MaxInfoLog]
	}
	return s
}
