package panel

import (
	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/physics"
	"github.com/cpmech/gosl/chk"
)

// materialKey is the single opaque texture bucket used for a discretized
// panel, since panels carry no texture information of their own
const materialKey = "panel"

// buildVerticesAndTriangles walks the grid in row-major order, emitting
// one vertex per present cell and two triangles per fully-present unit
// cell, exactly as the reference rasterizer does.
func buildVerticesAndTriangles(g *grid, piece inp.PieceData, cmPerM float64) (
	[][mesh.VertexStride]float32, [][3]uint32) {

	minX, minY := piece.BoundingBox[0][0], piece.BoundingBox[0][1]
	maxX, maxY := piece.BoundingBox[1][0], piece.BoundingBox[1][1]
	width := maxX - minX
	height := maxY - minY

	var vertexData [][mesh.VertexStride]float32
	var triangles [][3]uint32

	next := int32(0)
	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			cell := g.cells[i][j]
			if !cell.present {
				continue
			}

			u := float32(0)
			v := float32(0)
			if width != 0 {
				u = cell.x / float32(width)
			}
			if height != 0 {
				v = cell.y / float32(height)
			}

			vertexData = append(vertexData, [mesh.VertexStride]float32{
				cell.x / float32(cmPerM), cell.y / float32(cmPerM), 0,
				u, v,
				0, 0, 1,
			})
			next++
			g.index[i][j] = next

			if i > 0 && j > 0 {
				lowerLeft := g.index[i-1][j-1]
				lowerRight := g.index[i-1][j]
				upperLeft := g.index[i][j-1]

				if lowerLeft != 0 && upperLeft != 0 {
					triangles = append(triangles, [3]uint32{
						uint32(next - 1), uint32(upperLeft - 1), uint32(lowerLeft - 1),
					})
				}
				if lowerLeft != 0 && lowerRight != 0 {
					triangles = append(triangles, [3]uint32{
						uint32(lowerRight - 1), uint32(next - 1), uint32(lowerLeft - 1),
					})
				}
			}
		}
	}
	return vertexData, triangles
}

// buildRelations extracts stress, shear, and bend neighbor relations from
// the same grid used to build the triangles
func buildRelations(g *grid) *physics.VertexRelations {
	var stress, shear [][2]uint32
	var bend [][3]uint32

	at := func(i, j int) (int32, bool) {
		if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
			return 0, false
		}
		idx := g.index[i][j]
		return idx, idx != 0
	}

	for i := 0; i < g.rows; i++ {
		for j := 0; j < g.cols; j++ {
			current, hasCurrent := at(i, j)
			lowerLeft, hasLowerLeft := at(i-1, j-1)
			lowerMiddle, hasLowerMiddle := at(i-1, j)
			middleLeft, hasMiddleLeft := at(i, j-1)
			upperMiddle, hasUpperMiddle := at(i+1, j)
			middleRight, hasMiddleRight := at(i, j+1)

			if hasCurrent {
				if hasLowerMiddle {
					stress = append(stress, [2]uint32{uint32(current - 1), uint32(lowerMiddle - 1)})
					if hasUpperMiddle {
						bend = append(bend, [3]uint32{uint32(upperMiddle - 1), uint32(current - 1), uint32(lowerMiddle - 1)})
					}
				}
				if hasMiddleLeft {
					stress = append(stress, [2]uint32{uint32(current - 1), uint32(middleLeft - 1)})
					if hasMiddleRight {
						bend = append(bend, [3]uint32{uint32(middleRight - 1), uint32(current - 1), uint32(middleLeft - 1)})
					}
				}
				if hasLowerLeft {
					shear = append(shear, [2]uint32{uint32(current - 1), uint32(lowerLeft - 1)})
				}
			}
			if hasLowerMiddle && hasMiddleLeft {
				shear = append(shear, [2]uint32{uint32(lowerMiddle - 1), uint32(middleLeft - 1)})
			}
		}
	}

	return physics.NewVertexRelations(stress, shear, bend)
}

// extractAnnotations finds the snap and alignment points by interpolating
// the contour between turn points at the recorded marker fraction,
// storing both points in metre units. The alignment annotation uses
// piece.BodyPoints.Alignment, not Snap twice, despite reference data that
// occasionally reuses the snap marker for both.
func extractAnnotations(piece inp.PieceData, cmPerM float64) map[string]geom.Vec3 {
	contour := geom.Contour{Points: toVec3Slice(piece.Contour)}
	turnPoints := toVec3Slice(piece.TurnPoints)

	locate := func(bp inp.BodyPoint) geom.Vec3 {
		start := turnPoints[bp.TPBegin]
		end := turnPoints[bp.TPEnd]
		p := geom.PointOnContour(contour, start, end, bp.Marker)
		return geom.Vec3{X: p.X / cmPerM, Y: p.Y / cmPerM, Z: 0}
	}

	out := map[string]geom.Vec3{
		piece.BodyPoints.Snap.Name:      locate(piece.BodyPoints.Snap),
		piece.BodyPoints.Alignment.Name: locate(piece.BodyPoints.Alignment),
	}
	return out
}

func toVec3Slice(points [][2]float64) []geom.Vec3 {
	out := make([]geom.Vec3, len(points))
	for i, p := range points {
		out[i] = geom.Vec3{X: p[0], Y: p[1], Z: 0}
	}
	return out
}

// Discretize rasterizes one panel's JSON entry into a mesh, its vertex
// relations, and the DynamicPiece that owns both. Returns an error on
// malformed input (empty contour, degenerate bounding box) without
// aborting the rest of the garment.
func Discretize(piece inp.PieceData, vertexResolution, cmPerM, gravity, dampeningSteps float64) (*physics.DynamicPiece, error) {
	g, err := extractGrid(piece, vertexResolution)
	if err != nil {
		return nil, err
	}

	vertexData, triangles := buildVerticesAndTriangles(g, piece, cmPerM)
	if len(vertexData) == 0 {
		return nil, chk.Err("panel rasterized to zero vertices: bounding box %v, contour len %d", piece.BoundingBox, len(piece.Contour))
	}

	turnPoints := toVec3Slice(piece.TurnPoints)
	for i := range turnPoints {
		turnPoints[i] = turnPoints[i].Scale(1 / cmPerM)
	}

	m, err := mesh.NewMeshData(vertexData, triangles,
		map[string]mesh.TextureRange{materialKey: {Count: len(triangles), Offset: 0}},
		extractAnnotations(piece, cmPerM), turnPoints)
	if err != nil {
		return nil, err
	}
	if piece.BodyPoints.Alignment.Flip {
		m.FlipX()
	}

	relations := buildRelations(g)

	resting := vertexResolution / cmPerM
	piece2 := physics.NewDynamicPiece(m, relations,
		piece.BodyPoints.Snap.Name, piece.BodyPoints.Alignment.Name,
		resting, gravity, dampeningSteps)

	return piece2, nil
}
