package physics

import (
	"math"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/cpmech/gosl/chk"
)

// DynamicPiece is one simulated garment panel: its mesh, its neighbor
// relations, and the per-vertex velocity/acceleration buffers the
// physics core integrates each step.
type DynamicPiece struct {
	Mesh      *mesh.MeshData
	Relations *VertexRelations

	SnapPointName      string
	AlignmentPointName string

	RestingStraightLength float64
	RestingDiagonalLength float64
	DampeningConstant     float64

	Velocity     []geom.Vec3
	Acceleration []geom.Vec3
}

// NewDynamicPiece builds a DynamicPiece with zeroed velocity/acceleration
// buffers sized to the mesh, and the resting lengths/dampening constant
// derived from the grid spacing and step budget.
func NewDynamicPiece(m *mesh.MeshData, relations *VertexRelations,
	snapPointName, alignmentPointName string,
	restingStraightLength, gravity, nrSteps float64) *DynamicPiece {

	n := m.NrVertices()
	p := &DynamicPiece{
		Mesh:                  m,
		Relations:             relations,
		SnapPointName:         snapPointName,
		AlignmentPointName:    alignmentPointName,
		RestingStraightLength: restingStraightLength,
		RestingDiagonalLength: restingDiagonal(restingStraightLength),
		DampeningConstant:     math.Pi / nrSteps,
		Velocity:              make([]geom.Vec3, n),
		Acceleration:          make([]geom.Vec3, n),
	}
	return p
}

// ComputeForces resets acceleration to gravity and scatter-adds the
// stress, shear, bend, and friction contributions. Scatter-add, never
// last-write-wins: a vertex visited by several relations accumulates
// every contribution.
func (p *DynamicPiece) ComputeForces(gravity, stressWeight, stressThreshold,
	shearWeight, shearThreshold, bendWeight, bendThreshold, frictionConstant float64) {

	for i := range p.Acceleration {
		p.Acceleration[i] = geom.Vec3{X: 0, Y: -gravity, Z: 0}
	}

	p.applyLinear(p.Relations.Stress, p.RestingStraightLength, stressWeight, stressThreshold)
	p.applyLinear(p.Relations.Shear, p.RestingDiagonalLength, shearWeight, shearThreshold)
	p.applyBend(bendWeight, bendThreshold)

	for i := range p.Acceleration {
		p.Acceleration[i] = p.Acceleration[i].Sub(p.Velocity[i].Scale(frictionConstant))
	}
}

// applyLinear implements the stress/shear rule shared by both relation
// kinds: a Hookean restoring force that pulls a and b together when
// stretched past threshold and pushes them apart when compressed past
// threshold, with magnitude weight*|d-dhat| either way.
func (p *DynamicPiece) applyLinear(pairs [][2]uint32, restLength, weight, threshold float64) {
	if restLength == 0 {
		return
	}
	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		d := p.Mesh.Position(int(b)).Sub(p.Mesh.Position(int(a))).Scale(1 / restLength)
		norm := d.Norm()
		if norm == 0 {
			continue
		}
		if norm <= 1+threshold && norm >= 1-threshold {
			continue
		}
		excess := d.Sub(d.Scale(1 / norm))
		delta := excess.Scale(weight)
		p.Acceleration[a] = p.Acceleration[a].Add(delta)
		p.Acceleration[b] = p.Acceleration[b].Sub(delta)
	}
}

// applyBend implements the bend rule: pull the midpoint of each collinear
// triple back toward the average of its outer vertices
func (p *DynamicPiece) applyBend(weight, threshold float64) {
	for _, triple := range p.Relations.Bend {
		a, m, b := triple[0], triple[1], triple[2]
		mid := p.Mesh.Position(int(a)).Add(p.Mesh.Position(int(b))).Scale(0.5)
		delta := mid.Sub(p.Mesh.Position(int(m)))
		if delta.Norm() <= threshold {
			continue
		}
		adjust := delta.Scale(weight)
		p.Acceleration[a] = p.Acceleration[a].Sub(adjust.Scale(0.5))
		p.Acceleration[m] = p.Acceleration[m].Add(adjust)
		p.Acceleration[b] = p.Acceleration[b].Sub(adjust.Scale(0.5))
	}
}

// DampingSchedule returns psi(k), the 0-to-1 ramp across the step budget
// that moves the per-step velocity scale factor from its start value to
// its end value as the simulation progresses
func DampingSchedule(k int, dampeningConstant float64) float64 {
	return 0.5 - 0.5*math.Cos(dampeningConstant*float64(k))
}

// IntegrateVelocity advances velocity by acceleration*dt, then applies the
// tensile cap and the schedule-dependent damping factor per vertex
func (p *DynamicPiece) IntegrateVelocity(k int, timeDelta, maxTensileVelocity,
	dampStart, dampEnd float64) {

	psi := DampingSchedule(k, p.DampeningConstant)
	damp := dampStart + (dampEnd-dampStart)*psi

	for i := range p.Velocity {
		v := p.Velocity[i].Add(p.Acceleration[i].Scale(timeDelta))
		n := v.Norm()
		scale := damp
		if n > 0 && maxTensileVelocity/n < 1 {
			scale *= maxTensileVelocity / n
		}
		p.Velocity[i] = v.Scale(scale)
	}
}

// IntegratePosition offsets every vertex by velocity*dt then clamps the
// mesh above the floor at y=0
func (p *DynamicPiece) IntegratePosition(timeDelta float64) {
	deltas := make([]geom.Vec3, len(p.Velocity))
	indices := make([]int, len(p.Velocity))
	for i, v := range p.Velocity {
		deltas[i] = v.Scale(timeDelta)
		indices[i] = i
	}
	p.Mesh.OffsetVerticesMasked(indices, deltas)
	p.Mesh.ClampAboveZero()
}

// ApplyBodyCollision offsets every vertex found inside the body trimesh
// by its nearest-surface-point face normal scaled by the penetration
// distance, leaving annotations untouched
func (p *DynamicPiece) ApplyBodyCollision(body *mesh.Trimesh) {
	var indices []int
	var deltas []geom.Vec3
	for i := 0; i < p.Mesh.NrVertices(); i++ {
		q := p.Mesh.Position(i)
		if !body.Contains(q) {
			continue
		}
		point, normal := body.NearestSurfacePoint(q)
		distance := point.Sub(q).Norm()
		indices = append(indices, i)
		deltas = append(deltas, normal.Scale(distance))
	}
	if len(indices) == 0 {
		return
	}
	p.Mesh.OffsetVerticesMasked(indices, deltas)
}

// ApplyAdjustment applies each amount to its corresponding vertex index,
// the generic hook used for sewing attraction
func (p *DynamicPiece) ApplyAdjustment(indices []int, amounts []geom.Vec3) {
	if len(indices) != len(amounts) {
		chk.Panic("ApplyAdjustment: indices/amounts length mismatch: %d vs %d", len(indices), len(amounts))
	}
	if len(indices) == 0 {
		return
	}
	p.Mesh.OffsetVerticesMasked(indices, amounts)
}

// DetectNaN reports whether any vertex position has become non-finite,
// the signal to abort the simulation rather than keep stepping a
// diverged panel
func (p *DynamicPiece) DetectNaN() bool {
	for i := 0; i < p.Mesh.NrVertices(); i++ {
		q := p.Mesh.Position(i)
		if math.IsNaN(q.X) || math.IsNaN(q.Y) || math.IsNaN(q.Z) {
			return true
		}
	}
	return false
}
