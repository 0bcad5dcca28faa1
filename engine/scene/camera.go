package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera derives view and projection matrices. The view comes from the world
// transform of the node the camera is attached to.
type Camera interface {
	Component
	View() (mgl32.Mat4, error)
	Projection() mgl32.Mat4
	// PreRotation is applied by the caller, it is never folded into
	// Projection.
	PreRotation() mgl32.Mat4
	SetPreRotation(m mgl32.Mat4)
}

type cameraBase struct {
	componentBase
	preRotation mgl32.Mat4
}

func newCameraBase(name string) cameraBase {
	return cameraBase{
		componentBase: newComponentBase(name),
		preRotation:   mgl32.Ident4(),
	}
}

// View is the inverse of the owning node world matrix.
func (c *cameraBase) View() (mgl32.Mat4, error) {
	n := c.Node()
	if n == nil {
		return mgl32.Ident4(), ErrCameraDetached
	}
	return n.WorldMatrix().Inv(), nil
}

func (c *cameraBase) PreRotation() mgl32.Mat4 {
	return c.preRotation
}

func (c *cameraBase) SetPreRotation(m mgl32.Mat4) {
	c.preRotation = m
}

/**
 * @brief A camera with a perspective projection. The field of view is the
 * vertical angle in radians.
 */
type PerspectiveCamera struct {
	cameraBase
	fov         float32
	aspectRatio float32
	nearPlane   float32
	farPlane    float32
}

func NewPerspectiveCamera(name string, fov, aspectRatio, nearPlane, farPlane float32) *PerspectiveCamera {
	return &PerspectiveCamera{
		cameraBase:  newCameraBase(name),
		fov:         fov,
		aspectRatio: aspectRatio,
		nearPlane:   nearPlane,
		farPlane:    farPlane,
	}
}

func (c *PerspectiveCamera) Kind() Kind {
	return KindPerspectiveCamera
}

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.fov, c.aspectRatio, c.nearPlane, c.farPlane)
}

func (c *PerspectiveCamera) Fov() float32               { return c.fov }
func (c *PerspectiveCamera) SetFov(fov float32)         { c.fov = fov }
func (c *PerspectiveCamera) AspectRatio() float32       { return c.aspectRatio }
func (c *PerspectiveCamera) SetAspectRatio(ar float32)  { c.aspectRatio = ar }
func (c *PerspectiveCamera) NearPlane() float32         { return c.nearPlane }
func (c *PerspectiveCamera) SetNearPlane(znear float32) { c.nearPlane = znear }
func (c *PerspectiveCamera) FarPlane() float32          { return c.farPlane }
func (c *PerspectiveCamera) SetFarPlane(zfar float32)   { c.farPlane = zfar }

/**
 * @brief A camera with an orthographic box projection. Depth follows the
 * OpenGL convention: points on the near plane map to NDC z = -1 and points
 * on the far plane to z = +1.
 */
type OrthographicCamera struct {
	cameraBase
	left, right float32
	bottom, top float32
	nearPlane   float32
	farPlane    float32
}

func NewOrthographicCamera(name string, left, right, bottom, top, nearPlane, farPlane float32) *OrthographicCamera {
	return &OrthographicCamera{
		cameraBase: newCameraBase(name),
		left:       left,
		right:      right,
		bottom:     bottom,
		top:        top,
		nearPlane:  nearPlane,
		farPlane:   farPlane,
	}
}

func (c *OrthographicCamera) Kind() Kind {
	return KindOrthographicCamera
}

func (c *OrthographicCamera) Projection() mgl32.Mat4 {
	return mgl32.Ortho(c.left, c.right, c.bottom, c.top, c.nearPlane, c.farPlane)
}

func (c *OrthographicCamera) Left() float32          { return c.left }
func (c *OrthographicCamera) SetLeft(v float32)      { c.left = v }
func (c *OrthographicCamera) Right() float32         { return c.right }
func (c *OrthographicCamera) SetRight(v float32)     { c.right = v }
func (c *OrthographicCamera) Bottom() float32        { return c.bottom }
func (c *OrthographicCamera) SetBottom(v float32)    { c.bottom = v }
func (c *OrthographicCamera) Top() float32           { return c.top }
func (c *OrthographicCamera) SetTop(v float32)       { c.top = v }
func (c *OrthographicCamera) NearPlane() float32     { return c.nearPlane }
func (c *OrthographicCamera) SetNearPlane(v float32) { c.nearPlane = v }
func (c *OrthographicCamera) FarPlane() float32      { return c.farPlane }
func (c *OrthographicCamera) SetFarPlane(v float32)  { c.farPlane = v }
