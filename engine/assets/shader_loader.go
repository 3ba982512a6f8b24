package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
)

var (
	ErrFileNotFound   = errors.New("file cannot be opened")
	ErrEmptyFile      = errors.New("file is empty")
	ErrFileTooLarge   = errors.New("file is too big")
	ErrReadIncomplete = errors.New("file cannot be read to the end")
)

// maxSourceSize is the largest source a GL driver can take as a 32-bit count.
const maxSourceSize = math.MaxUint32

// Source is a shader text loaded from disk. The backing buffer holds the file
// contents followed by a single NUL so it can be handed to OpenGL as is.
type Source struct {
	name string
	buf  []byte
}

func (s *Source) Name() string { return s.name }

// Len is the file size, not counting the terminator.
func (s *Source) Len() int { return len(s.buf) - 1 }

// Bytes returns the whole buffer including the trailing NUL.
func (s *Source) Bytes() []byte { return s.buf }

// String returns the file contents without the terminator.
func (s *Source) String() string { return string(s.buf[:len(s.buf)-1]) }

// CString returns the contents with the terminator, ready for gl.Strs.
func (s *Source) CString() string { return string(s.buf) }

// Loader reads shader sources from a directory.
type Loader struct {
	FS fs.FS
}

// NewLoader returns a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{FS: os.DirFS(dir)}
}

// Load reads name fully into a NUL-terminated buffer.
func (l *Loader) Load(name string) (*Source, error) {
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load shader %q: %w: %v", name, ErrFileNotFound, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("load shader %q: %w: %v", name, ErrFileNotFound, err)
	}
	size := st.Size()
	if size <= 0 {
		return nil, fmt.Errorf("load shader %q: %w", name, ErrEmptyFile)
	}
	if uint64(size) > maxSourceSize {
		return nil, fmt.Errorf("load shader %q: %w (%d bytes)", name, ErrFileTooLarge, size)
	}

	buf := make([]byte, size+1)
	n, err := io.ReadFull(f, buf[:size])
	if err != nil {
		return nil, fmt.Errorf("load shader %q: %w: read %d of %d bytes", name, ErrReadIncomplete, n, size)
	}
	buf[size] = 0
	return &Source{name: name, buf: buf}, nil
}

// LoadShader reads name from dir into a null-terminated buffer for OpenGL.
func LoadShader(dir, name string) (*Source, error) {
	return NewLoader(dir).Load(name)
}
