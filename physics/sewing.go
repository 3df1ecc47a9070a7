package physics

import (
	"github.com/Mazchoo/sewsim/geom"
	"github.com/cpmech/gosl/chk"
)

// SewingPairRelations pairs matched vertex sequences on two panels with
// the per-step adjustment vector computed from their current separation.
// Indices[i][0] is a vertex on FromPiece, Indices[i][1] the corresponding
// vertex on ToPiece.
type SewingPairRelations struct {
	FromPiece  string
	ToPiece    string
	Indices    [][2]int
	Adjustment []geom.Vec3
}

// NewSewingPairRelations stores the paired indices (one from-vertex and
// one to-vertex per entry, so both sides have equal length) and allocates
// the adjustment buffer; it performs no further validation
func NewSewingPairRelations(fromPiece, toPiece string, indices [][2]int) *SewingPairRelations {
	return &SewingPairRelations{
		FromPiece:  fromPiece,
		ToPiece:    toPiece,
		Indices:    indices,
		Adjustment: make([]geom.Vec3, len(indices)),
	}
}

// RecomputeAdjustment reads the current positions of the two sewn pieces
// and recomputes the pull-to-midpoint adjustment, clamped in magnitude to
// stepLimit = SEWING_ADJUSTMENT_STEP*TIME_DELTA. The stored Adjustment is
// the half-vector applied to FromPiece; ToPiece receives its negation.
func (s *SewingPairRelations) RecomputeAdjustment(fromPiece, toPiece *DynamicPiece, stepLimit float64) {
	if len(s.Indices) != len(s.Adjustment) {
		chk.Panic("sewing pair %s<->%s: indices/adjustment length mismatch: %d vs %d",
			s.FromPiece, s.ToPiece, len(s.Indices), len(s.Adjustment))
	}
	for i, pair := range s.Indices {
		vFrom := fromPiece.Mesh.Position(pair[0])
		vTo := toPiece.Mesh.Position(pair[1])
		delta := vTo.Sub(vFrom)
		if n := delta.Norm(); n > stepLimit && n > 0 {
			delta = delta.Scale(stepLimit / n)
		}
		s.Adjustment[i] = delta.Scale(0.5)
	}
}

// FromIndicesAndDeltas returns the per-vertex indices/deltas to apply to
// FromPiece: each pulled toward ToPiece by the half-adjustment
func (s *SewingPairRelations) FromIndicesAndDeltas() ([]int, []geom.Vec3) {
	indices := make([]int, len(s.Indices))
	deltas := make([]geom.Vec3, len(s.Indices))
	for i, pair := range s.Indices {
		indices[i] = pair[0]
		deltas[i] = s.Adjustment[i]
	}
	return indices, deltas
}

// ToIndicesAndDeltas returns the per-vertex indices/deltas to apply to
// ToPiece: each pulled toward FromPiece by the negated half-adjustment
func (s *SewingPairRelations) ToIndicesAndDeltas() ([]int, []geom.Vec3) {
	indices := make([]int, len(s.Indices))
	deltas := make([]geom.Vec3, len(s.Indices))
	for i, pair := range s.Indices {
		indices[i] = pair[1]
		deltas[i] = s.Adjustment[i].Scale(-1)
	}
	return indices, deltas
}
