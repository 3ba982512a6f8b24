package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v4.2-core/gl"
)

// GLError is a code returned by glGetError.
type GLError uint32

func (e GLError) Error() string {
	return fmt.Sprintf("OpenGL error %s (0x%04x)", e.Name(), uint32(e))
}

func (e GLError) Name() string {
	switch uint32(e) {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return "UNKNOWN"
	}
}
