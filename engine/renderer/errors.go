package renderer

import "errors"

var (
	ErrNilSubMesh      = errors.New("GLMesh needs a submesh")
	ErrNilDevice       = errors.New("graphics device is nil")
	ErrEmptyBuffer     = errors.New("buffer data is empty")
	ErrShaderNotFound  = errors.New("shader not found")
	ErrTextureNotFound = errors.New("texture not found")
	ErrDestroyed       = errors.New("GPU resource already destroyed")
)
