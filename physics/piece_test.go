package physics

import (
	"math"
	"testing"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/internal/simtest"
	"github.com/cpmech/gosl/chk"
)

func TestGravityOnlyFreefall(tst *testing.T) {
	chk.PrintTitle("GravityOnlyFreefall")
	piece := simtest.GridPiece(3, 0.1)

	const gravity = 9.81
	const dt = 0.01
	const steps = 50
	vertex := 4 // centre of the 3x3 grid

	startY := piece.Mesh.Position(vertex).Y
	var velocity geom.Vec3

	for k := 0; k < steps; k++ {
		velocity = velocity.Add(geom.Vec3{Y: -gravity}.Scale(dt))
		p := piece.Mesh.Position(vertex)
		piece.Mesh.SetPosition(vertex, p.Add(velocity.Scale(dt)))
	}

	y := piece.Mesh.Position(vertex).Y
	// velocity is updated before position each step (semi-implicit Euler),
	// so the drop is g*dt^2*(1+2+...+steps), not the continuous g*t^2/2
	expected := startY - 0.5*gravity*dt*dt*float64(steps*(steps+1))
	chk.Scalar(tst, "y after freefall", 1e-6, y, expected)
}

func TestStressAtRestLengthIsZero(tst *testing.T) {
	chk.PrintTitle("StressAtRestLengthIsZero")
	piece := simtest.GridPiece(3, 0.1)
	piece.ComputeForces(0, 600, 0.05, 300, 0.05, 150, 0.05, 0)

	for i := range piece.Acceleration {
		a := piece.Acceleration[i]
		chk.Scalar(tst, "acceleration.x", 1e-6, a.X, 0)
		chk.Scalar(tst, "acceleration.z", 1e-6, a.Z, 0)
	}
}

func TestBendZeroWhenCollinear(tst *testing.T) {
	chk.PrintTitle("BendZeroWhenCollinear")
	piece := simtest.GridPiece(3, 0.1)
	piece.ComputeForces(0, 0, 0.05, 0, 0.05, 150, 0.05, 0)

	for i := range piece.Acceleration {
		a := piece.Acceleration[i]
		chk.Scalar(tst, "bend-only acceleration.x", 1e-6, a.X, 0)
		chk.Scalar(tst, "bend-only acceleration.y", 1e-6, a.Y, 0)
		chk.Scalar(tst, "bend-only acceleration.z", 1e-6, a.Z, 0)
	}
}

func TestDampingScheduleMonotone(tst *testing.T) {
	chk.PrintTitle("DampingScheduleMonotone")
	nrSteps := 200
	dampeningConstant := math.Pi / float64(nrSteps)

	prev := -1.0
	for k := 0; k <= nrSteps; k++ {
		psi := DampingSchedule(k, dampeningConstant)
		if psi < prev-1e-12 {
			tst.Fatalf("damping schedule not monotone at k=%d: %g < %g", k, psi, prev)
		}
		prev = psi
	}
	chk.Scalar(tst, "psi(0)", 1e-9, DampingSchedule(0, dampeningConstant), 0)
	chk.Scalar(tst, "psi(nrSteps)", 1e-9, DampingSchedule(nrSteps, dampeningConstant), 1)
}

func TestCompressedEdgePointsOutward(tst *testing.T) {
	chk.PrintTitle("CompressedEdgePointsOutward")
	piece := simtest.GridPiece(2, 1.0)

	a := piece.Mesh.Position(0)
	b := piece.Mesh.Position(1)
	mid := a.Add(b.Sub(a).Scale(0.75))
	piece.Mesh.SetPosition(1, mid)

	// shear weight 0: the diagonal link from vertex 1 would otherwise add
	// its own push to vertex 1 and break the equal-magnitude check
	piece.ComputeForces(0, 600, 0.05, 0, 0.05, 150, 0.05, 0)

	accA := piece.Acceleration[0]
	accB := piece.Acceleration[1]
	if accA.X >= 0 {
		tst.Fatalf("expected vertex 0 pushed toward -x, got %v", accA)
	}
	if accB.X <= 0 {
		tst.Fatalf("expected vertex 1 pushed toward +x, got %v", accB)
	}
	chk.Scalar(tst, "equal magnitude", 1e-6, math.Abs(accA.X), math.Abs(accB.X))
}
