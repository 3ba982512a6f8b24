package shader

import (
	"fmt"
	"log"

	"github.com/hubastard/tessline/engine/assets"
)

// Program is a successfully linked GPU program.
type Program struct {
	dev    Device
	handle uint32
}

func (p *Program) Handle() uint32 { return p.handle }

// Release deletes the program object. Safe to call more than once.
func (p *Program) Release() {
	if p == nil || p.handle == 0 {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.handle = 0
}

// Link attaches the four stages to a new program and links it. The stages
// stay owned by the caller and may be released as soon as Link returns.
func Link(dev Device, vertex, fragment, tessControl, tessEval *Stage) (*Program, error) {
	stages := []*Stage{vertex, fragment, tessControl, tessEval}
	for i, st := range stages {
		if st == nil || st.handle == 0 {
			return nil, fmt.Errorf("link: %w: %s", ErrMissingStage, Kind(i))
		}
	}

	prog := dev.CreateProgram()
	for _, st := range stages {
		dev.AttachShader(prog, st.handle)
	}
	dev.LinkProgram(prog)

	if !dev.ProgramLinked(prog) {
		msg := truncateLog(dev.ProgramInfoLog(prog, MaxInfoLog))
		dev.DeleteProgram(prog)
		log.Printf("glLinkProgram() gets error:\n%s", msg)
		return nil, &LinkError{Log: msg}
	}
	return &Program{dev: dev, handle: prog}, nil
}

// Sources holds the text of each stage.
type Sources struct {
	Vertex      string
	Fragment    string
	TessControl string
	TessEval    string
}

// Build compiles every stage and links them. Compiled stages are released on
// every path, the program keeps what it needs.
func Build(dev Device, src Sources) (*Program, error) {
	vs, err := Compile(dev, src.Vertex, Vertex)
	if err != nil {
		return nil, err
	}
	defer vs.Release()

	fs, err := Compile(dev, src.Fragment, Fragment)
	if err != nil {
		return nil, err
	}
	defer fs.Release()

	tcs, err := Compile(dev, src.TessControl, TessControl)
	if err != nil {
		return nil, err
	}
	defer tcs.Release()

	tes, err := Compile(dev, src.TessEval, TessEval)
	if err != nil {
		return nil, err
	}
	defer tes.Release()

	return Link(dev, vs, fs, tcs, tes)
}

// Files names the source file of each stage.
type Files struct {
	Vertex      string
	Fragment    string
	TessControl string
	TessEval    string
}

var DefaultFiles = Files{
	Vertex:      "VertexShader.glsl",
	Fragment:    "FragmentShader.glsl",
	TessControl: "TCS.glsl",
	TessEval:    "TES.glsl",
}

// Load reads the four stage files with ld and builds them into a program.
func Load(dev Device, ld *assets.Loader, files Files) (*Program, error) {
	var src Sources
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{files.Vertex, &src.Vertex},
		{files.Fragment, &src.Fragment},
		{files.TessControl, &src.TessControl},
		{files.TessEval, &src.TessEval},
	} {
		s, err := ld.Load(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = s.CString()
	}
	return Build(dev, src)
}
