package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestRotationBetweenIdentity(tst *testing.T) {
	chk.PrintTitle("RotationBetweenIdentity")
	v := Vec3{X: 1, Y: 0, Z: 0}
	r := RotationBetween(v, v)
	got := r.MulVec(v)
	chk.Vector(tst, "v.R == v", 1e-12, []float64{got.X, got.Y, got.Z}, []float64{v.X, v.Y, v.Z})
}

func TestRotationBetweenAntiparallel(tst *testing.T) {
	chk.PrintTitle("RotationBetweenAntiparallel")
	v1 := Vec3{X: 1, Y: 0, Z: 0}
	v2 := Vec3{X: -1, Y: 0, Z: 0}
	r := RotationBetween(v1, v2)
	got := r.MulVec(v1)
	chk.Vector(tst, "v1.R == -v1", 1e-9, []float64{got.X, got.Y, got.Z}, []float64{v2.X, v2.Y, v2.Z})
}

func TestRotationBetweenGeneral(tst *testing.T) {
	chk.PrintTitle("RotationBetweenGeneral")
	v1 := Vec3{X: 1, Y: 0, Z: 0}
	v2 := Vec3{X: 0, Y: 1, Z: 0}
	r := RotationBetween(v1, v2)
	got := r.MulVec(v1)
	chk.Vector(tst, "v1.R == v2", 1e-9, []float64{got.X, got.Y, got.Z}, []float64{v2.X, v2.Y, v2.Z})
}

func TestOrthonormalBasis(tst *testing.T) {
	chk.PrintTitle("OrthonormalBasis")
	v := Vec3{X: 0, Y: 0, Z: 1}
	p := Vec3{X: 1, Y: 0, Z: 1}
	b := OrthonormalBasis(v, p)

	vHat := Vec3{X: b[0][0], Y: b[1][0], Z: b[2][0]}
	uHat := Vec3{X: b[0][1], Y: b[1][1], Z: b[2][1]}
	wHat := Vec3{X: b[0][2], Y: b[1][2], Z: b[2][2]}

	chk.Scalar(tst, "|v|", 1e-12, vHat.Norm(), 1)
	chk.Scalar(tst, "|u|", 1e-12, uHat.Norm(), 1)
	chk.Scalar(tst, "v.u", 1e-12, vHat.Dot(uHat), 0)
	chk.Scalar(tst, "w == v x u", 1e-12, wHat.Sub(vHat.Cross(uHat)).Norm(), 0)
}

func TestAlignmentMatrixRoundTrip(tst *testing.T) {
	chk.PrintTitle("AlignmentMatrixRoundTrip")
	v1 := Vec3{X: 1, Y: 0, Z: 0}
	p1 := Vec3{X: 0, Y: 1, Z: 0}
	v2 := Vec3{X: 0, Y: 1, Z: 0}
	p2 := Vec3{X: 1, Y: 0, Z: 0}

	r := AlignmentMatrix(v1, p1, v2, p2)
	got := r.MulVec(v1)
	chk.Vector(tst, "v1.R == v2", 1e-9, []float64{got.X, got.Y, got.Z}, []float64{v2.X, v2.Y, v2.Z})
}

func TestPointOnContourWraparound(tst *testing.T) {
	chk.PrintTitle("PointOnContourWraparound")
	c := Contour{Points: []Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	}}
	a := c.Points[3]
	b := c.Points[0]
	p := PointOnContour(c, a, b, 1.0)
	chk.Scalar(tst, "p.x", 1e-9, p.X, b.X)
	chk.Scalar(tst, "p.y", 1e-9, p.Y, b.Y)
}

func TestLengthAlongContour(tst *testing.T) {
	chk.PrintTitle("LengthAlongContour")
	c := Contour{Points: []Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 4, Y: 4, Z: 0}, {X: 0, Y: 4, Z: 0},
	}}
	a := c.Points[0]
	b := c.Points[1]
	got := LengthAlongContour(c, a, b, 0, 1)
	chk.Scalar(tst, "length", 1e-9, got, 4)
}

func TestBendAroundLineAdjustmentPreservesDistance(tst *testing.T) {
	chk.PrintTitle("BendAroundLineAdjustmentPreservesDistance")
	prev := Vec3{X: 0, Y: 0, Z: 0}
	current := Vec3{X: 1, Y: 0, Z: 0}
	plane := NewRotationPlane(math.Pi/4, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 0, Z: 1})

	adjustment := BendAroundLineAdjustment(current, prev, plane)
	newPoint := prev.Add(adjustment)
	chk.Scalar(tst, "distance preserved", 1e-9, newPoint.Sub(prev).Norm(), current.Sub(prev).Norm())
}
