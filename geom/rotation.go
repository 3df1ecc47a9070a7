package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// degenerateCrossNorm is the threshold below which two vectors are
// considered parallel or antiparallel for RotationBetween, matching the
// 1e-5 tolerance used by the reference implementation
const degenerateCrossNorm = 1e-5

// RotationBetween returns the rotation matrix that takes v1 to v2 using
// Rodrigues' formula. When the rotation axis is degenerate (v1, v2
// parallel or antiparallel) an arbitrary orthogonal axis is used; the
// result is the identity when v1 and v2 already point the same way and a
// 180 degree rotation when they point opposite ways.
func RotationBetween(v1, v2 Vec3) Mat3 {
	a := v1.Normalize()
	b := v2.Normalize()

	axis := a.Cross(b)
	sinTheta := axis.Norm()
	cosTheta := a.Dot(b)

	if sinTheta < degenerateCrossNorm {
		if cosTheta > 0 {
			return Identity()
		}
		axis = arbitraryOrthogonal(a)
		return rodrigues(axis.Normalize(), -1, 0) // cos(pi)=-1, sin(pi)=0
	}

	return rodrigues(axis.Scale(1/sinTheta), cosTheta, sinTheta)
}

// rodrigues builds the rotation matrix for a unit axis and precomputed
// cos/sin of the rotation angle, in MulVec's row-vector convention
// (v' = v.R), i.e. the transpose of the column-vector Rodrigues matrix
func rodrigues(axis Vec3, cosTheta, sinTheta float64) Mat3 {
	k := skew(axis)
	kk := k.MulMat(k)
	var r Mat3
	id := Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[j][i] = id[i][j] + sinTheta*k[i][j] + (1-cosTheta)*kk[i][j]
		}
	}
	return r
}

// skew returns the skew-symmetric cross-product matrix of v, such that
// skew(v).MulVec(x) == v.Cross(x)
func skew(v Vec3) Mat3 {
	return Mat3{
		{0, -v.Z, v.Y},
		{v.Z, 0, -v.X},
		{-v.Y, v.X, 0},
	}
}

// arbitraryOrthogonal returns some vector orthogonal to v, used as a
// fallback rotation axis when v1 and v2 are (anti)parallel
func arbitraryOrthogonal(v Vec3) Vec3 {
	if math.Abs(v.X) < 0.9 {
		return Vec3{1, 0, 0}.Cross(v)
	}
	return Vec3{0, 1, 0}.Cross(v)
}

// OrthonormalBasis builds a right-handed basis with columns (v̂, û, ŵ)
// where û is p with its v̂ component removed then normalized, and
// ŵ = v̂ x û. Panics via chk.Panic if v or the component of p orthogonal
// to v has zero norm.
func OrthonormalBasis(v, p Vec3) Mat3 {
	vHat := v.Normalize()
	if vHat.IsZero() {
		chk.Panic("orthonormal_basis: v has zero norm")
	}
	pProj := p.Sub(vHat.Scale(p.Dot(vHat)))
	uHat := pProj.Normalize()
	if uHat.IsZero() {
		chk.Panic("orthonormal_basis: p has no component orthogonal to v")
	}
	wHat := vHat.Cross(uHat)
	return columns(vHat, uHat, wHat)
}

// AlignmentMatrix returns R = B1 . B2^T, the rotation that maps the
// (v1, p1) frame onto the (v2, p2) frame.
func AlignmentMatrix(v1, p1, v2, p2 Vec3) Mat3 {
	b1 := OrthonormalBasis(v1, p1)
	b2 := OrthonormalBasis(v2, p2)
	return b1.MulMat(b2.Transpose())
}
