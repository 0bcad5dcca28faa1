package math

import "github.com/go-gl/mathgl/mgl32"

/**
 * @brief Represents the local transform of an object: translation, rotation
 * and scale. The local matrix is cached and rebuilt only after one of the
 * properties changed, so they must be edited through the setters.
 */
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	isDirty bool
	local   mgl32.Mat4
}

func TransformCreate() Transform {
	return TransformFromPositionRotationScale(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromPosition(position mgl32.Vec3) Transform {
	return TransformFromPositionRotationScale(position, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func TransformFromPositionRotationScale(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	return Transform{
		position: position,
		rotation: rotation,
		scale:    scale,
		isDirty:  true,
		local:    mgl32.Ident4(),
	}
}

func (t *Transform) Translation() mgl32.Vec3 {
	return t.position
}

func (t *Transform) SetTranslation(position mgl32.Vec3) {
	t.position = position
	t.touch()
}

func (t *Transform) Translate(translation mgl32.Vec3) {
	t.position = t.position.Add(translation)
	t.touch()
}

func (t *Transform) Rotation() mgl32.Quat {
	return t.rotation
}

func (t *Transform) SetRotation(rotation mgl32.Quat) {
	t.rotation = rotation
	t.touch()
}

// Rotate applies rotation on top of the current one, in local space.
func (t *Transform) Rotate(rotation mgl32.Quat) {
	t.rotation = t.rotation.Mul(rotation)
	t.touch()
}

func (t *Transform) Scale() mgl32.Vec3 {
	return t.scale
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.scale = scale
	t.touch()
}

func (t *Transform) SetPositionRotationScale(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	t.position = position
	t.rotation = rotation
	t.scale = scale
	t.touch()
}

// LocalMatrix returns T * R * S, rebuilding it if the transform changed.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	if t.isDirty {
		tr := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
		r := t.rotation.Normalize().Mat4()
		s := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
		t.local = tr.Mul4(r).Mul4(s)
		t.isDirty = false
	}
	return t.local
}

func (t *Transform) touch() {
	t.isDirty = true
}
