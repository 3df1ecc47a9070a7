package sim

import (
	"math"
	"testing"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/internal/simtest"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/chk"
)

func gravityOnlyParams(nrSteps int) *inp.Params {
	p := inp.DefaultParams()
	p.NrSteps = nrSteps
	p.RunCollisionDetection = false
	p.StressWeighting = 0
	p.ShearWeighting = 0
	p.BendWeighting = 0
	p.FrictionConstant = 0
	return p
}

func TestRunGravityOnlyMeanYDecreasesMonotonically(tst *testing.T) {
	chk.PrintTitle("RunGravityOnlyMeanYDecreasesMonotonically")
	piece := simtest.GridPiece(3, 0.1)
	for i := 0; i < piece.Mesh.NrVertices(); i++ {
		p := piece.Mesh.Position(i)
		piece.Mesh.SetPosition(i, p.Add(geom.Vec3{Y: 1}))
	}

	params := gravityOnlyParams(100)
	simulation := NewFabricSimulation(nil, map[string]*physics.DynamicPiece{"panel": piece},
		[]string{"panel"}, nil, params)

	meanY := func() float64 {
		var sum float64
		for i := 0; i < piece.Mesh.NrVertices(); i++ {
			sum += piece.Mesh.Position(i).Y
		}
		return sum / float64(piece.Mesh.NrVertices())
	}

	prev := meanY()
	for k := 0; k < params.NrSteps; k++ {
		if err := simulation.Step(k); err != nil {
			tst.Fatalf("step %d failed: %v", k, err)
		}
		cur := meanY()
		if cur > prev+1e-9 {
			tst.Fatalf("mean(y) increased at step %d: %g > %g", k, cur, prev)
		}
		prev = cur
	}
	if len(simulation.Frames) != params.NrSteps {
		tst.Fatalf("expected %d recorded frames, got %d", params.NrSteps, len(simulation.Frames))
	}
}

// twoVertexPieces builds two minimal 3-vertex pieces, "a" and "b", with no
// internal forces so sewing is the only force acting on vertex 0 of each.
// Vertices 1 and 2 are unused padding required by NewMeshData's minimum
// vertex count and never appear in any relation or sewing pair.
func twoVertexPieces(ax, bx float64) (*physics.DynamicPiece, *physics.DynamicPiece) {
	build := func(x float64) *physics.DynamicPiece {
		vertexData := [][mesh.VertexStride]float32{
			{0, 0, 0, 0, 0, 0, 0, 1},
			{1, 0, 0, 0, 0, 0, 0, 1},
			{0, 1, 0, 0, 0, 0, 0, 1},
		}
		m, err := mesh.NewMeshData(vertexData, nil, nil, nil, nil)
		if err != nil {
			panic(err)
		}
		anchor := m.Position(0)
		m.OffsetVertices(geom.Vec3{X: x - anchor.X, Y: -anchor.Y, Z: -anchor.Z})
		relations := physics.NewVertexRelations(nil, nil, nil)
		return physics.NewDynamicPiece(m, relations, "snap", "alignment", 1.0, 0, 200)
	}
	return build(ax), build(bx)
}

func TestSewingAdjustmentPullsPiecesTogetherWithoutOvershoot(tst *testing.T) {
	chk.PrintTitle("SewingAdjustmentPullsPiecesTogetherWithoutOvershoot")
	a, b := twoVertexPieces(0, 0.5)

	pairs := [][2]int{{0, 0}}
	sewing := physics.NewSewingPairRelations("a", "b", pairs)

	params := inp.DefaultParams()
	params.Gravity = 0
	params.FrictionConstant = 0
	params.RunCollisionDetection = false
	params.NrSteps = 50

	simulation := NewFabricSimulation(nil,
		map[string]*physics.DynamicPiece{"a": a, "b": b},
		[]string{"a", "b"},
		[]*physics.SewingPairRelations{sewing},
		params)

	separation := func() float64 {
		return math.Abs(a.Mesh.Position(0).X - b.Mesh.Position(0).X)
	}

	prev := separation()
	for k := 0; k < params.NrSteps; k++ {
		if err := simulation.Step(k); err != nil {
			tst.Fatalf("step %d failed: %v", k, err)
		}
		cur := separation()
		if cur > prev+1e-9 {
			tst.Fatalf("separation increased at step %d: %g > %g", k, cur, prev)
		}
		prev = cur
	}
	if prev > 1e-3 {
		tst.Fatalf("expected near-convergence, final separation %g", prev)
	}
}

func TestDampingAtStepMonotone(tst *testing.T) {
	chk.PrintTitle("DampingAtStepMonotone")
	nrSteps := 100
	prev := -1.0
	for k := 0; k <= nrSteps; k++ {
		psi := DampingAtStep(k, nrSteps)
		if psi < prev-1e-12 {
			tst.Fatalf("damping not monotone at k=%d: %g < %g", k, psi, prev)
		}
		prev = psi
	}
}
