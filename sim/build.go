package sim

import (
	"sort"

	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/panel"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/Mazchoo/sewsim/placement"
	"github.com/Mazchoo/sewsim/seam"
	"github.com/cpmech/gosl/io"
)

// Build discretizes and places every piece of a garment, resolves its
// seams, and returns a ready-to-run FabricSimulation. Pieces that fail
// discretization are logged and dropped; the rest of the garment
// continues.
func Build(garment *inp.Garment, body *mesh.MeshData, params *inp.Params, pieceSubset []string) (*FabricSimulation, error) {
	subset := map[string]bool{}
	for _, name := range pieceSubset {
		subset[name] = true
	}

	var pieceOrder []string
	for name := range garment.Pieces {
		if len(subset) == 0 || subset[name] {
			pieceOrder = append(pieceOrder, name)
		}
	}
	sort.Strings(pieceOrder) // deterministic default order, overridable by pieceSubset's order

	if len(pieceSubset) > 0 {
		pieceOrder = pieceOrder[:0]
		for _, name := range pieceSubset {
			if _, ok := garment.Pieces[name]; ok {
				pieceOrder = append(pieceOrder, name)
			}
		}
	}

	pieces := map[string]*physics.DynamicPiece{}
	var orderedPieces []string
	for _, name := range pieceOrder {
		data := garment.Pieces[name]
		dyn, err := panel.Discretize(data, params.VertexResolution, params.CmPerM,
			params.Gravity, float64(params.NrSteps))
		if err != nil {
			io.Pforan("sim: dropping piece %q: %v\n", name, err)
			continue
		}
		pieces[name] = dyn
		orderedPieces = append(orderedPieces, name)
	}

	for _, name := range orderedPieces {
		placement.Place(pieces[name], body, garment.Pieces[name].WrapsAroundBody,
			params.DistanceFromBody, params.WrapRadians)
	}

	var sewing []*physics.SewingPairRelations
	for _, entry := range garment.Sewing {
		if pieces[entry.From.Piece] == nil || pieces[entry.To.Piece] == nil {
			continue
		}
		pair, err := seam.Resolve(entry, garment.Pieces, pieces, params.CmPerM, params.SewingSpacing)
		if err != nil {
			io.Pforan("sim: dropping seam %s<->%s: %v\n", entry.From.Piece, entry.To.Piece, err)
			continue
		}
		sewing = append(sewing, pair)
	}

	return NewFabricSimulation(body, pieces, orderedPieces, sewing, params), nil
}
