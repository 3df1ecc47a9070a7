// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sim implements the fixed-step simulation driver: per-step force
// accumulation, integration, body-collision projection, and sewing
// adjustment, plus the append-only frame recorder.
package sim

import (
	"math"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/chk"
)

// Frame snapshots every piece's vertex positions at one simulation step
type Frame struct {
	Step      int
	Positions map[string][]geom.Vec3
}

// FabricSimulation owns the avatar body, the ordered collection of
// dynamic pieces, the sewing relations between them, and the
// append-only frame history. Piece iteration always follows PieceOrder,
// fixed at construction, to keep the step loop deterministic.
type FabricSimulation struct {
	Body       *mesh.MeshData
	Pieces     map[string]*physics.DynamicPiece
	PieceOrder []string
	Sewing     []*physics.SewingPairRelations
	Params     *inp.Params

	Frames []Frame
}

// NewFabricSimulation builds a simulation from already-placed pieces and
// resolved sewing relations. pieceOrder fixes the deterministic
// panel-iteration order the step loop relies on.
func NewFabricSimulation(body *mesh.MeshData, pieces map[string]*physics.DynamicPiece,
	pieceOrder []string, sewing []*physics.SewingPairRelations, params *inp.Params) *FabricSimulation {

	return &FabricSimulation{
		Body:       body,
		Pieces:     pieces,
		PieceOrder: pieceOrder,
		Sewing:     sewing,
		Params:     params,
	}
}

// Run advances the simulation Params.NrSteps times, returning early (with
// the frames recorded up to the previous step) if a NaN is detected in
// any piece.
func (s *FabricSimulation) Run() error {
	for k := 0; k < s.Params.NrSteps; k++ {
		if err := s.Step(k); err != nil {
			return err
		}
	}
	return nil
}

// Step executes one fixed-step iteration in a fixed order: forces, then
// integrate (velocity, position, collision) per piece, then recompute and
// apply sewing adjustments from the now-current positions, then snapshot
// the frame.
func (s *FabricSimulation) Step(k int) error {
	p := s.Params

	for _, name := range s.PieceOrder {
		piece := s.Pieces[name]
		piece.ComputeForces(p.Gravity, p.StressWeighting, p.StressThreshold,
			p.ShearWeighting, p.ShearThreshold, p.BendWeighting, p.BendThreshold,
			p.FrictionConstant)
	}

	body := s.bodyTrimesh()
	for _, name := range s.PieceOrder {
		piece := s.Pieces[name]
		piece.IntegrateVelocity(k, p.TimeDelta, p.MaxTensileVelocity,
			p.VelocityDampingStart, p.VelocityDampingEnd)
		piece.IntegratePosition(p.TimeDelta)
		if p.RunCollisionDetection {
			piece.ApplyBodyCollision(body)
		}
		if piece.DetectNaN() {
			return chk.Err("RuntimeFatal: NaN detected in piece %q at step %d", name, k)
		}
	}

	stepLimit := p.SewingAdjustmentStep * p.TimeDelta
	for _, pair := range s.Sewing {
		from := s.Pieces[pair.FromPiece]
		to := s.Pieces[pair.ToPiece]
		pair.RecomputeAdjustment(from, to, stepLimit)
	}
	for _, pair := range s.Sewing {
		from := s.Pieces[pair.FromPiece]
		to := s.Pieces[pair.ToPiece]
		fromIdx, fromDelta := pair.FromIndicesAndDeltas()
		from.ApplyAdjustment(fromIdx, fromDelta)
		toIdx, toDelta := pair.ToIndicesAndDeltas()
		to.ApplyAdjustment(toIdx, toDelta)
	}

	s.recordFrame(k)
	return nil
}

func (s *FabricSimulation) bodyTrimesh() *mesh.Trimesh {
	if s.Body == nil {
		return nil
	}
	return s.Body.Trimesh()
}

// recordFrame appends a snapshot of every piece's current vertex
// positions, keyed by piece name
func (s *FabricSimulation) recordFrame(k int) {
	positions := make(map[string][]geom.Vec3, len(s.PieceOrder))
	for _, name := range s.PieceOrder {
		piece := s.Pieces[name]
		snapshot := make([]geom.Vec3, piece.Mesh.NrVertices())
		for i := range snapshot {
			snapshot[i] = piece.Mesh.Position(i)
		}
		positions[name] = snapshot
	}
	s.Frames = append(s.Frames, Frame{Step: k, Positions: positions})
}

// DampingAtStep exposes the velocity-damping schedule value for step k,
// used by tests verifying the damping ramp is monotone
func DampingAtStep(k, nrSteps int) float64 {
	return physics.DampingSchedule(k, math.Pi/float64(nrSteps))
}
