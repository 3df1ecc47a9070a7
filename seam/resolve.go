// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package seam resolves a garment's sewing entries into matched
// vertex-index pairs between two panels, via contour-length sampling and
// nearest-vertex lookup.
package seam

import (
	"math"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/chk"
)

// localContour reconstructs a piece's 2D contour in the mesh's current
// local frame by converting centimetres to metres and subtracting the
// origin offset recorded when the piece's mesh was placed at the origin
func localContour(points [][2]float64, cmPerM float64, origin geom.Vec3) geom.Contour {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		v := geom.Vec3{X: p[0] / cmPerM, Y: p[1] / cmPerM, Z: 0}
		out[i] = v.Sub(origin)
	}
	return geom.Contour{Points: out}
}

// nearestVertex2D returns the index of the panel vertex whose (x,y)
// position is closest to the sample point's (x,y)
func nearestVertex2D(piece *physics.DynamicPiece, sample geom.Vec3) int {
	best := math.Inf(1)
	bestIdx := 0
	for i := 0; i < piece.Mesh.NrVertices(); i++ {
		x, y := piece.Mesh.Position2D(i)
		d := (x-sample.X)*(x-sample.X) + (y-sample.Y)*(y-sample.Y)
		if d < best {
			best = d
			bestIdx = i
		}
	}
	return bestIdx
}

// resolveSide samples n points along one seam side's contour span and
// returns the nearest panel vertex index for each sample
func resolveSide(side inp.SeamSide, pieceData inp.PieceData, piece *physics.DynamicPiece,
	cmPerM float64, n int) []int {

	contour := localContour(pieceData.Contour, cmPerM, piece.Mesh.OriginArray)
	turnPoints := make([]geom.Vec3, len(pieceData.TurnPoints))
	for i, p := range pieceData.TurnPoints {
		v := geom.Vec3{X: p[0] / cmPerM, Y: p[1] / cmPerM, Z: 0}
		turnPoints[i] = v.Sub(piece.Mesh.OriginArray)
	}
	a := turnPoints[side.TPIndexStart]
	b := turnPoints[side.TPIndexEnd]

	samples := geom.PointsAlongContour(contour, a, b, side.MarkerStart, side.MarkerEnd, n)
	indices := make([]int, len(samples))
	for i, s := range samples {
		indices[i] = nearestVertex2D(piece, s)
	}
	return indices
}

// Resolve turns one garment SeamEntry into a SewingPairRelations,
// sampling both sides at a count derived from their mean contour length.
// Panics with SeamLengthMismatch if the resolver produces unequal-length
// sides, which would be a programming error.
func Resolve(entry inp.SeamEntry, piecesData map[string]inp.PieceData,
	pieces map[string]*physics.DynamicPiece, cmPerM, sewingSpacing float64) (*physics.SewingPairRelations, error) {

	fromData, ok := piecesData[entry.From.Piece]
	if !ok {
		return nil, chk.Err("seam references unknown piece %q", entry.From.Piece)
	}
	toData, ok := piecesData[entry.To.Piece]
	if !ok {
		return nil, chk.Err("seam references unknown piece %q", entry.To.Piece)
	}
	fromPiece, ok := pieces[entry.From.Piece]
	if !ok {
		return nil, chk.Err("seam references undiscretized piece %q", entry.From.Piece)
	}
	toPiece, ok := pieces[entry.To.Piece]
	if !ok {
		return nil, chk.Err("seam references undiscretized piece %q", entry.To.Piece)
	}

	fromContour := localContour(fromData.Contour, cmPerM, fromPiece.Mesh.OriginArray)
	fromTurnPoints := make([]geom.Vec3, len(fromData.TurnPoints))
	for i, p := range fromData.TurnPoints {
		v := geom.Vec3{X: p[0] / cmPerM, Y: p[1] / cmPerM, Z: 0}
		fromTurnPoints[i] = v.Sub(fromPiece.Mesh.OriginArray)
	}
	toContour := localContour(toData.Contour, cmPerM, toPiece.Mesh.OriginArray)
	toTurnPoints := make([]geom.Vec3, len(toData.TurnPoints))
	for i, p := range toData.TurnPoints {
		v := geom.Vec3{X: p[0] / cmPerM, Y: p[1] / cmPerM, Z: 0}
		toTurnPoints[i] = v.Sub(toPiece.Mesh.OriginArray)
	}

	fromLen := geom.LengthAlongContour(fromContour,
		fromTurnPoints[entry.From.TPIndexStart], fromTurnPoints[entry.From.TPIndexEnd],
		entry.From.MarkerStart, entry.From.MarkerEnd)
	toLen := geom.LengthAlongContour(toContour,
		toTurnPoints[entry.To.TPIndexStart], toTurnPoints[entry.To.TPIndexEnd],
		entry.To.MarkerStart, entry.To.MarkerEnd)

	if sewingSpacing <= 0 {
		return nil, chk.Err("sewing spacing must be positive, got %g", sewingSpacing)
	}
	meanLen := (fromLen + toLen) / 2
	n := int(math.Floor(meanLen / sewingSpacing))
	if n < 1 {
		n = 1
	}

	fromIndices := resolveSide(entry.From, fromData, fromPiece, cmPerM, n)
	toIndices := resolveSide(entry.To, toData, toPiece, cmPerM, n)

	if len(fromIndices) != len(toIndices) {
		chk.Panic("SeamLengthMismatch: %s<->%s: %d vs %d",
			entry.From.Piece, entry.To.Piece, len(fromIndices), len(toIndices))
	}

	pairs := make([][2]int, len(fromIndices))
	for i := range fromIndices {
		pairs[i] = [2]int{fromIndices[i], toIndices[i]}
	}

	return physics.NewSewingPairRelations(entry.From.Piece, entry.To.Piece, pairs), nil
}
