// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package placement snaps a discretized panel onto the avatar body, aligns
// its orientation, optionally wrap-bends tubular panels around a limb, and
// runs the initial body-collision projection.
package placement

import (
	"sort"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/io"
)

// zHat is the panel's planar normal, used as the "v1" frame vector for
// alignment since a freshly discretized panel lies flat in the xy-plane
var zHat = geom.Vec3{X: 0, Y: 0, Z: 1}

// Place runs the full per-panel placement pipeline: snap, align, optional
// wrap-bend, and initial body-collision projection. A missing snap or
// alignment annotation is logged and the rest of the placement is skipped;
// a degenerate alignment vector is logged and only the rotation is skipped.
func Place(piece *physics.DynamicPiece, body *mesh.MeshData, wrapsAroundBody bool,
	distanceFromBody, wrapRadians float64) {

	snapPoint, snapNormal, snapped := snap(piece, body, distanceFromBody)
	if !snapped {
		return
	}

	if !align(piece, body, snapPoint, distanceFromBody) {
		return
	}

	if wrapsAroundBody {
		wrapBend(piece, snapPoint, snapNormal, wrapRadians)
	}

	collide(piece, body)
}

// snap translates the whole panel so its snap annotation lands at the
// body's matching annotation offset outward along the body normal. Returns
// the new snap-point position, the body's surface normal there (reused by
// wrap-bend), and whether snapping ran.
func snap(piece *physics.DynamicPiece, body *mesh.MeshData, distanceFromBody float64) (geom.Vec3, geom.Vec3, bool) {
	pieceSnap, ok := piece.Mesh.GetAnnotation(piece.SnapPointName)
	if !ok {
		io.Pforan("placement: panel missing snap annotation %q, skipping placement\n", piece.SnapPointName)
		return geom.Vec3{}, geom.Vec3{}, false
	}
	bodySnap, ok := body.GetAnnotation(piece.SnapPointName)
	if !ok {
		io.Pforan("placement: body missing snap annotation %q, skipping placement\n", piece.SnapPointName)
		return geom.Vec3{}, geom.Vec3{}, false
	}

	target, normal := body.Trimesh().ClosestNormalOnMesh(bodySnap, distanceFromBody)

	delta := target.Sub(pieceSnap)
	piece.Mesh.OffsetVertices(delta)

	newSnapPoint, _ := piece.Mesh.GetAnnotation(piece.SnapPointName)
	return newSnapPoint, normal, true
}

// align rotates the panel so its snap-to-alignment vector matches the
// body's corresponding vector and surface normal. The body-side target is
// the surface point closest to the body's alignment annotation (not the
// snap annotation), offset outward by distanceFromBody exactly like snap's
// own target, since the body surface can curve between the two annotations
// (a sleeve spanning shoulder to wrist is the case this exists for).
// Returns false only when an annotation is missing.
func align(piece *physics.DynamicPiece, body *mesh.MeshData, snapPoint geom.Vec3, distanceFromBody float64) bool {
	pieceAlign, ok := piece.Mesh.GetAnnotation(piece.AlignmentPointName)
	if !ok {
		io.Pforan("placement: panel missing alignment annotation %q, skipping placement\n", piece.AlignmentPointName)
		return false
	}
	bodyAlign, ok := body.GetAnnotation(piece.AlignmentPointName)
	if !ok {
		io.Pforan("placement: body missing alignment annotation %q, skipping placement\n", piece.AlignmentPointName)
		return false
	}

	alignTarget, alignNormal := body.Trimesh().ClosestNormalOnMesh(bodyAlign, distanceFromBody)

	pieceAlignVec := pieceAlign.Sub(snapPoint)
	bodyAlignVec := alignTarget.Sub(snapPoint)

	if pieceAlignVec.IsZero() || bodyAlignVec.IsZero() {
		io.Pforan("placement: degenerate alignment vector for %q, skipping alignment\n", piece.AlignmentPointName)
		return true
	}

	r := geom.AlignmentMatrix(pieceAlignVec, zHat, bodyAlignVec, alignNormal)
	piece.Mesh.MatrixMultiply(r, snapPoint)

	return true
}

// spinePoint pairs a panel vertex with its signed projection onto the
// wrap axis, used to order the non-spine vertices outward from the spine
type spinePoint struct {
	index      int
	projection float64
}

// wrapBend curls a tubular panel around the alignment line, rotating
// vertices away from the spine in increasing steps of wrapRadians so that
// the flat panel wraps into a tube around the limb. The spine axis is
// recomputed from the piece's current (post-alignment-rotation) annotations
// rather than reusing align()'s pre-rotation vector, since the panel has
// since moved. Degenerate geometry (no vertices near the line) is logged
// and skipped.
func wrapBend(piece *physics.DynamicPiece, snapPoint, bodyNormal geom.Vec3, wrapRadians float64) {
	pieceAlign, ok := piece.Mesh.GetAnnotation(piece.AlignmentPointName)
	if !ok {
		io.Pforan("placement: panel missing alignment annotation %q, skipping wrap-bend\n", piece.AlignmentPointName)
		return
	}
	alignVec := pieceAlign.Sub(snapPoint)
	if alignVec.IsZero() {
		io.Pforan("placement: degenerate alignment vector for %q, skipping wrap-bend\n", piece.AlignmentPointName)
		return
	}
	axis := alignVec.Normalize()
	threshold := piece.RestingStraightLength

	n := piece.Mesh.NrVertices()
	var spineIdx []int
	for i := 0; i < n; i++ {
		if geom.DistanceToLine(piece.Mesh.Position(i), snapPoint, axis) <= threshold {
			spineIdx = append(spineIdx, i)
		}
	}
	if len(spineIdx) == 0 {
		io.Pforan("placement: wrap-bend found no spine vertices, skipping\n")
		return
	}

	w := bodyNormal.Cross(axis)
	if w.IsZero() {
		io.Pforan("placement: wrap-bend axis is degenerate, skipping\n")
		return
	}
	w = w.Normalize()

	spineOrigins := make([]geom.Vec3, len(spineIdx))
	for i, idx := range spineIdx {
		spineOrigins[i] = piece.Mesh.Position(idx)
	}

	var positive, negative []spinePoint
	spineSet := make(map[int]bool, len(spineIdx))
	for _, idx := range spineIdx {
		spineSet[idx] = true
	}

	for i := 0; i < n; i++ {
		if spineSet[i] {
			continue
		}
		p := piece.Mesh.Position(i)
		proj := p.Sub(piece.Mesh.Position(spineIdx[0])).Dot(w)
		sp := spinePoint{index: i, projection: proj}
		if proj >= 0 {
			positive = append(positive, sp)
		} else {
			negative = append(negative, sp)
		}
	}

	sort.Slice(positive, func(i, j int) bool { return positive[i].projection < positive[j].projection })
	sort.Slice(negative, func(i, j int) bool { return negative[i].projection > negative[j].projection })

	bendSide(piece, positive, spineIdx, spineOrigins, axis, wrapRadians)
	bendSide(piece, negative, spineIdx, spineOrigins, axis, -wrapRadians)
}

// bendSide rotates each vertex on one side of the spine, outward from the
// nearest spine point, by an accumulating multiple of stepRadians so that
// successive points preserve their pre-wrap inter-point spacing.
func bendSide(piece *physics.DynamicPiece, side []spinePoint, spineIdx []int,
	spineOrigins []geom.Vec3, axis geom.Vec3, stepRadians float64) {

	if len(side) == 0 {
		return
	}

	points := make([]geom.Vec3, len(side))
	for i, sp := range side {
		points[i] = piece.Mesh.Position(sp.index)
	}
	closest := geom.ClosestLineIndex(points, spineOrigins, axis)

	var indices []int
	var deltas []geom.Vec3
	accumulated := 0.0
	var prevPoint geom.Vec3

	for i, sp := range side {
		origin := spineOrigins[closest[i]]
		accumulated += stepRadians
		plane := geom.NewRotationPlane(accumulated, origin, axis)

		prev := prevPoint
		if i == 0 {
			prev = origin
		}
		current := piece.Mesh.Position(sp.index)
		adjustment := geom.BendAroundLineAdjustment(current, prev, plane)
		if adjustment.IsZero() {
			prevPoint = current
			continue
		}

		target := prev.Add(adjustment)
		indices = append(indices, sp.index)
		deltas = append(deltas, target.Sub(current))
		prevPoint = target
	}

	if len(indices) > 0 {
		piece.Mesh.OffsetVerticesMasked(indices, deltas)
	}
}

// collide runs the initial body-collision projection so the placed panel
// never starts penetrating the avatar
func collide(piece *physics.DynamicPiece, body *mesh.MeshData) {
	piece.ApplyBodyCollision(body.Trimesh())
}
