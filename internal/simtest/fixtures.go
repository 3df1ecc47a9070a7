// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simtest supplies small reference fixtures shared by the test
// files of every simulation package: a regular NxN grid panel, a flat
// rectangular "body" plane, and a cylindrical "body" tube, all built
// directly from in-memory data rather than reading fixture files from
// disk.
package simtest

import (
	"math"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/Mazchoo/sewsim/inp"
	"github.com/Mazchoo/sewsim/mesh"
	"github.com/Mazchoo/sewsim/physics"
)

// GridPiece builds an n x n rectangular panel of side length (n-1)*spacing
// metres, with a snap annotation at its centre and an alignment annotation
// one spacing unit away along +x, and the stress/shear/bend relations of a
// regular grid.
func GridPiece(n int, spacing float64) *physics.DynamicPiece {
	var vertexData [][mesh.VertexStride]float32
	index := make([][]int32, n)
	for i := range index {
		index[i] = make([]int32, n)
	}

	next := int32(0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := float32(j) * float32(spacing)
			y := float32(i) * float32(spacing)
			vertexData = append(vertexData, [mesh.VertexStride]float32{x, y, 0, 0, 0, 0, 0, 1})
			index[i][j] = next
			next++
		}
	}

	var triangles [][3]uint32
	var stress, shear [][2]uint32
	var bend [][3]uint32

	at := func(i, j int) (int32, bool) {
		if i < 0 || i >= n || j < 0 || j >= n {
			return 0, false
		}
		return index[i][j], true
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			current, _ := at(i, j)
			if i > 0 && j > 0 {
				lowerLeft, _ := at(i-1, j-1)
				lowerRight, _ := at(i-1, j)
				upperLeft, _ := at(i, j-1)
				triangles = append(triangles, [3]uint32{uint32(current), uint32(upperLeft), uint32(lowerLeft)})
				triangles = append(triangles, [3]uint32{uint32(lowerRight), uint32(current), uint32(lowerLeft)})
			}

			lowerLeft, hasLowerLeft := at(i-1, j-1)
			lowerMiddle, hasLowerMiddle := at(i-1, j)
			middleLeft, hasMiddleLeft := at(i, j-1)
			upperMiddle, hasUpperMiddle := at(i+1, j)
			middleRight, hasMiddleRight := at(i, j+1)

			if hasLowerMiddle {
				stress = append(stress, [2]uint32{uint32(current), uint32(lowerMiddle)})
				if hasUpperMiddle {
					bend = append(bend, [3]uint32{uint32(upperMiddle), uint32(current), uint32(lowerMiddle)})
				}
			}
			if hasMiddleLeft {
				stress = append(stress, [2]uint32{uint32(current), uint32(middleLeft)})
				if hasMiddleRight {
					bend = append(bend, [3]uint32{uint32(middleRight), uint32(current), uint32(middleLeft)})
				}
			}
			if hasLowerLeft {
				shear = append(shear, [2]uint32{uint32(current), uint32(lowerLeft)})
			}
			if hasLowerMiddle && hasMiddleLeft {
				shear = append(shear, [2]uint32{uint32(lowerMiddle), uint32(middleLeft)})
			}
		}
	}

	mid := n / 2
	annotations := map[string]geom.Vec3{
		"snap":      {X: float64(mid) * spacing, Y: float64(mid) * spacing, Z: 0},
		"alignment": {X: float64(mid+1) * spacing, Y: float64(mid) * spacing, Z: 0},
	}

	m, err := mesh.NewMeshData(vertexData, triangles,
		map[string]mesh.TextureRange{"panel": {Count: len(triangles), Offset: 0}},
		annotations, nil)
	if err != nil {
		panic(err)
	}

	relations := physics.NewVertexRelations(stress, shear, bend)
	return physics.NewDynamicPiece(m, relations, "snap", "alignment", spacing, 9.81, 200)
}

// FlatBody builds a flat rectangular "body" as a thin box spanning
// [-w/2, w/2] x [0, h] x [-0.01, 0.01], with snap/alignment annotations
// matching GridPiece's naming, used as a trivially flat collision surface.
func FlatBody(w, h float64) *mesh.MeshData {
	half := w / 2
	corners := [8][3]float64{
		{-half, 0, -0.01}, {half, 0, -0.01}, {half, h, -0.01}, {-half, h, -0.01},
		{-half, 0, 0.01}, {half, 0, 0.01}, {half, h, 0.01}, {-half, h, 0.01},
	}
	vertexData := make([][mesh.VertexStride]float32, 8)
	for i, c := range corners {
		vertexData[i] = [mesh.VertexStride]float32{float32(c[0]), float32(c[1]), float32(c[2]), 0, 0, 0, 0, 1}
	}

	triangles := [][3]uint32{
		{0, 1, 2}, {2, 3, 0}, // front
		{5, 4, 7}, {7, 6, 5}, // back
		{4, 0, 3}, {3, 7, 4}, // left
		{1, 5, 6}, {6, 2, 1}, // right
		{4, 5, 1}, {1, 0, 4}, // bottom
		{3, 2, 6}, {6, 7, 3}, // top
	}

	annotations := map[string]geom.Vec3{
		"snap":      {X: 0, Y: h / 2, Z: 0.01},
		"alignment": {X: 0, Y: h/2 + 0.1, Z: 0.01},
	}

	m, err := mesh.NewMeshData(vertexData, triangles,
		map[string]mesh.TextureRange{"body": {Count: len(triangles), Offset: 0}},
		annotations, nil)
	if err != nil {
		panic(err)
	}
	return m
}

// CylinderBody builds a tube of the given radius and length running along
// +x, centred on y=0, z=0 before placement, with snap and alignment
// annotations both sitting on the "top" of the tube (local +y) so that a
// panel's alignment vector maps onto the tube's own +x axis. segments
// controls the angular resolution of the side wall; the ends are left open.
func CylinderBody(radius, length float64, segments int) *mesh.MeshData {
	var vertexData [][mesh.VertexStride]float32
	var triangles [][3]uint32

	rings := 2
	index := make([][]int32, rings)
	next := int32(0)
	for r := 0; r < rings; r++ {
		index[r] = make([]int32, segments)
		x := float32(r) * float32(length)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			y := float32(radius * math.Cos(theta))
			z := float32(radius * math.Sin(theta))
			nx, ny, nz := float32(0), float32(math.Cos(theta)), float32(math.Sin(theta))
			vertexData = append(vertexData, [mesh.VertexStride]float32{x, y, z, 0, 0, nx, ny, nz})
			index[r][s] = next
			next++
		}
	}

	for s := 0; s < segments; s++ {
		sNext := (s + 1) % segments
		a := index[0][s]
		b := index[0][sNext]
		c := index[1][s]
		d := index[1][sNext]
		triangles = append(triangles, [3]uint32{uint32(a), uint32(b), uint32(c)})
		triangles = append(triangles, [3]uint32{uint32(b), uint32(d), uint32(c)})
	}

	annotations := map[string]geom.Vec3{
		"snap":      {X: 0.25 * length, Y: radius, Z: 0},
		"alignment": {X: 0.75 * length, Y: radius, Z: 0},
	}

	m, err := mesh.NewMeshData(vertexData, triangles,
		map[string]mesh.TextureRange{"body": {Count: len(triangles), Offset: 0}},
		annotations, nil)
	if err != nil {
		panic(err)
	}
	return m
}

// SamplePieceData returns a minimal square PieceData JSON fixture usable
// by panel/placement/seam tests that exercise the inp.PieceData path
// directly instead of GridPiece's pre-built mesh.
func SamplePieceData() inp.PieceData {
	return inp.PieceData{
		Contour: [][2]float64{
			{0, 0}, {10, 0}, {10, 10}, {0, 10},
		},
		BoundingBox: [2][2]float64{{0, 0}, {10, 10}},
		TurnPoints: [][2]float64{
			{0, 0}, {10, 0}, {10, 10}, {0, 10},
		},
		Cog: [2]float64{5, 5},
		BodyPoints: inp.BodyPoints{
			Snap:      inp.BodyPoint{Name: "snap", TPBegin: 0, TPEnd: 1, Marker: 0.5},
			Alignment: inp.BodyPoint{Name: "alignment", TPBegin: 1, TPEnd: 2, Marker: 0.5},
		},
	}
}
