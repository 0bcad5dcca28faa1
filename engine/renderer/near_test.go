package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// mgl32's ApproxEqual family is relative and rejects tiny values next to zero.
const nearDelta = 1e-5

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], nearDelta, msgAndArgs...)
	}
}

func assertMat4Near(t *testing.T, want, got mgl32.Mat4, msgAndArgs ...interface{}) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], nearDelta, msgAndArgs...)
	}
}
