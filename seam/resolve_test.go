package seam

import (
	"testing"

	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/panel"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/chk"
)

// twoSquarePanels builds two adjacent 10x10cm squares sharing the edge
// from turn point 1 to turn point 2 (the right edge of "left" and the
// left edge of "right", after "right" is offset by 10cm in x)
func twoSquarePanels(tst *testing.T) (map[string]inp.PieceData, map[string]*physics.DynamicPiece) {
	left := inp.PieceData{
		Contour:     [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		BoundingBox: [2][2]float64{{0, 0}, {10, 10}},
		TurnPoints:  [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Cog:         [2]float64{5, 5},
		BodyPoints: inp.BodyPoints{
			Snap:      inp.BodyPoint{Name: "snap", TPBegin: 0, TPEnd: 1, Marker: 0.5},
			Alignment: inp.BodyPoint{Name: "alignment", TPBegin: 1, TPEnd: 2, Marker: 0.5},
		},
	}
	right := inp.PieceData{
		Contour:     [][2]float64{{10, 0}, {20, 0}, {20, 10}, {10, 10}},
		BoundingBox: [2][2]float64{{10, 0}, {20, 10}},
		TurnPoints:  [][2]float64{{10, 0}, {20, 0}, {20, 10}, {10, 10}},
		Cog:         [2]float64{15, 5},
		BodyPoints: inp.BodyPoints{
			Snap:      inp.BodyPoint{Name: "snap", TPBegin: 0, TPEnd: 1, Marker: 0.5},
			Alignment: inp.BodyPoint{Name: "alignment", TPBegin: 1, TPEnd: 2, Marker: 0.5},
		},
	}

	piecesData := map[string]inp.PieceData{"left": left, "right": right}
	pieces := map[string]*physics.DynamicPiece{}
	for name, data := range piecesData {
		p, err := panel.Discretize(data, 1, 100, 9.81, 200)
		if err != nil {
			tst.Fatalf("discretize %s: %v", name, err)
		}
		pieces[name] = p
	}
	return piecesData, pieces
}

func TestResolveEqualLengthSides(tst *testing.T) {
	chk.PrintTitle("ResolveEqualLengthSides")
	piecesData, pieces := twoSquarePanels(tst)

	entry := inp.SeamEntry{
		From: inp.SeamSide{Piece: "left", TPIndexStart: 1, TPIndexEnd: 2, MarkerStart: 0, MarkerEnd: 1},
		To:   inp.SeamSide{Piece: "right", TPIndexStart: 3, TPIndexEnd: 0, MarkerStart: 0, MarkerEnd: 1},
	}

	rel, err := Resolve(entry, piecesData, pieces, 100, 1)
	if err != nil {
		tst.Fatalf("resolve failed: %v", err)
	}
	if len(rel.Indices) == 0 {
		tst.Fatalf("expected at least one sewn vertex pair")
	}
	if len(rel.Adjustment) != len(rel.Indices) {
		tst.Fatalf("adjustment/indices length mismatch: %d vs %d", len(rel.Adjustment), len(rel.Indices))
	}
}

func TestResolveUnknownPieceErrors(tst *testing.T) {
	chk.PrintTitle("ResolveUnknownPieceErrors")
	piecesData, pieces := twoSquarePanels(tst)

	entry := inp.SeamEntry{
		From: inp.SeamSide{Piece: "left", TPIndexStart: 1, TPIndexEnd: 2, MarkerStart: 0, MarkerEnd: 1},
		To:   inp.SeamSide{Piece: "missing", TPIndexStart: 3, TPIndexEnd: 0, MarkerStart: 0, MarkerEnd: 1},
	}

	_, err := Resolve(entry, piecesData, pieces, 100, 1)
	if err == nil {
		tst.Fatalf("expected an error referencing an unknown piece")
	}
}
