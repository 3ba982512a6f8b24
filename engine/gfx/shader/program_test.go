package shader

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hubastard/tessline/engine/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice compiles any source without "syntax error" in it and links
// programs whose stages all declare the same "// block:" interface line.
type fakeDevice struct {
	next     uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram
	log      string
}

type fakeShader struct {
	kind     Kind
	src      string
	compiled bool
}

type fakeProgram struct {
	attached []uint32
	kinds    []Kind
	linked   bool
	log      string
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{shaders: map[uint32]*fakeShader{}, programs: map[uint32]*fakeProgram{}}
}

func (d *fakeDevice) id() uint32 { d.next++; return d.next }

func (d *fakeDevice) CreateShader(kind Kind) uint32 {
	h := d.id()
	d.shaders[h] = &fakeShader{kind: kind}
	return h
}
func (d *fakeDevice) ShaderSource(sh uint32, src string) { d.shaders[sh].src = src }
func (d *fakeDevice) CompileShader(sh uint32) {
	s := d.shaders[sh]
	s.compiled = !strings.Contains(s.src, "syntax error")
}
func (d *fakeDevice) ShaderCompiled(sh uint32) bool { return d.shaders[sh].compiled }
func (d *fakeDevice) ShaderInfoLog(sh uint32, max int) string {
	if d.log != "" {
		return d.log
	}
	return "0(1) : error C0000: syntax error, unexpected identifier"
}
func (d *fakeDevice) DeleteShader(sh uint32) { delete(d.shaders, sh) }

func (d *fakeDevice) CreateProgram() uint32 {
	h := d.id()
	d.programs[h] = &fakeProgram{}
	return h
}
func (d *fakeDevice) AttachShader(prog, sh uint32) {
	p := d.programs[prog]
	p.attached = append(p.attached, sh)
	p.kinds = append(p.kinds, d.shaders[sh].kind)
}
func (d *fakeDevice) LinkProgram(prog uint32) {
	p := d.programs[prog]
	block := ""
	p.linked = true
	for i, sh := range p.attached {
		b := blockOf(d.shaders[sh].src)
		if i == 0 {
			block = b
		} else if b != block {
			p.linked = false
			p.log = "error: interface block " + b + " does not match " + block
		}
	}
}
func (d *fakeDevice) ProgramLinked(prog uint32) bool { return d.programs[prog].linked }
func (d *fakeDevice) ProgramInfoLog(prog uint32, max int) string {
	return d.programs[prog].log
}
func (d *fakeDevice) DeleteProgram(prog uint32) { delete(d.programs, prog) }

func blockOf(src string) string {
	for _, line := range strings.Split(src, "\n") {
		if b, ok := strings.CutPrefix(line, "// block: "); ok {
			return strings.TrimRight(b, "\x00")
		}
	}
	return ""
}

func validSources() Sources {
	return Sources{
		Vertex:      "#version 420 core\n// block: Vert\nvoid main() {}\n",
		Fragment:    "#version 420 core\n// block: Vert\nvoid main() {}\n",
		TessControl: "#version 420 core\n// block: Vert\nvoid main() {}\n",
		TessEval:    "#version 420 core\n// block: Vert\nvoid main() {}\n",
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	dev := newFakeDevice()

	st, err := Compile(dev, "void main() { syntax error }", Fragment)
	require.Error(t, err)
	assert.Nil(t, st)
	assert.ErrorIs(t, err, ErrCompile)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Fragment, ce.Kind)
	assert.NotEmpty(t, ce.Log)
	assert.Empty(t, dev.shaders, "failed shader must be deleted")
}

func TestCompile_LogIsBounded(t *testing.T) {
	dev := newFakeDevice()
	dev.log = strings.Repeat("e", 4*MaxInfoLog)

	_, err := Compile(dev, "syntax error", Vertex)
	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Len(t, ce.Log, MaxInfoLog)
}

func TestCompile_ReleaseIsIdempotent(t *testing.T) {
	dev := newFakeDevice()

	st, err := Compile(dev, "void main() {}", TessEval)
	require.NoError(t, err)
	assert.Equal(t, TessEval, st.Kind())
	assert.Len(t, dev.shaders, 1)

	st.Release()
	st.Release()
	assert.Empty(t, dev.shaders)
	assert.Zero(t, st.Handle())
}

func TestBuild_Success(t *testing.T) {
	dev := newFakeDevice()

	prog, err := Build(dev, validSources())
	require.NoError(t, err)
	require.NotNil(t, prog)

	p := dev.programs[prog.Handle()]
	require.NotNil(t, p)
	assert.True(t, p.linked)
	assert.ElementsMatch(t, []Kind{Vertex, Fragment, TessControl, TessEval}, p.kinds)
	assert.Empty(t, dev.shaders, "stages are released after linking")

	prog.Release()
	prog.Release()
	assert.Empty(t, dev.programs)
}

func TestBuild_CompileFailureReleasesEarlierStages(t *testing.T) {
	dev := newFakeDevice()
	src := validSources()
	src.TessEval = "syntax error"

	prog, err := Build(dev, src)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, ErrCompile)
	assert.Empty(t, dev.shaders)
	assert.Empty(t, dev.programs)
}

func TestBuild_LinkError(t *testing.T) {
	dev := newFakeDevice()
	src := validSources()
	src.TessEval = "#version 420 core\n// block: Other\nvoid main() {}\n"

	prog, err := Build(dev, src)
	assert.Nil(t, prog)
	assert.ErrorIs(t, err, ErrLink)

	var le *LinkError
	require.True(t, errors.As(err, &le))
	assert.NotEmpty(t, le.Log)
	assert.Empty(t, dev.shaders)
	assert.Empty(t, dev.programs, "unlinked program must not survive")
}

func TestLink_MissingStage(t *testing.T) {
	dev := newFakeDevice()
	vs, err := Compile(dev, "void main() {}", Vertex)
	require.NoError(t, err)
	defer vs.Release()

	_, err = Link(dev, vs, nil, vs, vs)
	assert.ErrorIs(t, err, ErrMissingStage)
	assert.Contains(t, err.Error(), Fragment.String())
	assert.Empty(t, dev.programs)
}

func TestBuild_Repeatable(t *testing.T) {
	dev := newFakeDevice()

	first, err := Build(dev, validSources())
	require.NoError(t, err)
	second, err := Build(dev, validSources())
	require.NoError(t, err)

	assert.NotEqual(t, first.Handle(), second.Handle())
	assert.Equal(t, dev.programs[first.Handle()].kinds, dev.programs[second.Handle()].kinds)
	assert.Len(t, dev.programs, 2)
	assert.Empty(t, dev.shaders)

	first.Release()
	assert.True(t, dev.programs[second.Handle()].linked)
}

func TestLoad_FromFiles(t *testing.T) {
	src := validSources()
	ld := &assets.Loader{FS: fstest.MapFS{
		DefaultFiles.Vertex:      {Data: []byte(src.Vertex)},
		DefaultFiles.Fragment:    {Data: []byte(src.Fragment)},
		DefaultFiles.TessControl: {Data: []byte(src.TessControl)},
		DefaultFiles.TessEval:    {Data: []byte(src.TessEval)},
	}}
	dev := newFakeDevice()

	prog, err := Load(dev, ld, DefaultFiles)
	require.NoError(t, err)
	assert.True(t, dev.programs[prog.Handle()].linked)
}

func TestLoad_MissingFileAbortsBeforeCompile(t *testing.T) {
	ld := &assets.Loader{FS: fstest.MapFS{
		DefaultFiles.Vertex: {Data: []byte("void main() {}")},
	}}
	dev := newFakeDevice()

	_, err := Load(dev, ld, DefaultFiles)
	assert.ErrorIs(t, err, assets.ErrFileNotFound)
	assert.Zero(t, dev.next, "no GL objects created")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "tessellation control", TessControl.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
