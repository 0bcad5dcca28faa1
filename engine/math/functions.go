package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}

// FrontFromYawPitch returns the unit view direction for a yaw/pitch pair in
// degrees. Yaw -90 looks down -Z.
func FrontFromYawPitch(yawDeg, pitchDeg float32) mgl32.Vec3 {
	yaw := DegToRad(yawDeg)
	pitch := DegToRad(pitchDeg)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	return front.Normalize()
}

// LookRotation returns the rotation that orients -Z along front with the
// given up vector.
func LookRotation(front, up mgl32.Vec3) mgl32.Quat {
	f := front.Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)
	basis := mgl32.Mat3FromCols(r, u, f.Mul(-1))
	return mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}
