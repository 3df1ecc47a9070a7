package panel

import (
	"testing"

	"github.com/Mazchoo/sewsim/internal/simtest"
	"github.com/cpmech/gosl/chk"
)

func TestDiscretizeSquarePanel(tst *testing.T) {
	chk.PrintTitle("DiscretizeSquarePanel")
	piece := simtest.SamplePieceData()

	dyn, err := Discretize(piece, 1, 100, 9.81, 200)
	if err != nil {
		tst.Fatalf("discretize failed: %v", err)
	}

	nv := uint32(dyn.Mesh.NrVertices())
	for _, tri := range dyn.Mesh.IndexData {
		for _, idx := range tri {
			if idx >= nv {
				tst.Fatalf("index %d out of range (nr_vertices=%d)", idx, nv)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			tst.Fatalf("degenerate triangle %v", tri)
		}
	}

	for _, pair := range dyn.Relations.Stress {
		if pair[0] >= nv || pair[1] >= nv {
			tst.Fatalf("stress relation out of range: %v", pair)
		}
	}
	for _, pair := range dyn.Relations.Shear {
		if pair[0] >= nv || pair[1] >= nv {
			tst.Fatalf("shear relation out of range: %v", pair)
		}
	}
	for _, triple := range dyn.Relations.Bend {
		if triple[0] >= nv || triple[1] >= nv || triple[2] >= nv {
			tst.Fatalf("bend relation out of range: %v", triple)
		}
	}
}

func TestDiscretizeEmptyBoundingBox(tst *testing.T) {
	chk.PrintTitle("DiscretizeEmptyBoundingBox")
	piece := simtest.SamplePieceData()
	piece.BoundingBox = [2][2]float64{{0, 0}, {0, 0}}

	_, err := Discretize(piece, 1, 100, 9.81, 200)
	if err == nil {
		tst.Fatalf("expected InputShape error for zero-area bounding box")
	}
}

func TestDiscretizeAlignmentFlip(tst *testing.T) {
	chk.PrintTitle("DiscretizeAlignmentFlip")
	piece := simtest.SamplePieceData()
	piece.BodyPoints.Alignment.Flip = true

	dyn, err := Discretize(piece, 1, 100, 9.81, 200)
	if err != nil {
		tst.Fatalf("discretize failed: %v", err)
	}
	if dyn.Mesh.NrVertices() == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
}
