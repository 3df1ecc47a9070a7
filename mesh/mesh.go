// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the triangle-mesh container shared by cloth
// panels and the avatar body: a vertex buffer, an index buffer, named
// annotation points, turn points, and in-place rigid/non-rigid transforms.
package mesh

import (
	"github.com/Mazchoo/sewsim/geom"
	"github.com/cpmech/gosl/chk"
)

// VertexStride is the number of f32 components per vertex row:
// [x, y, z, u, v, nx, ny, nz]
const VertexStride = 8

// TextureRange locates one material's triangles inside IndexData
type TextureRange struct {
	Count  int
	Offset int
}

// MeshData is a triangle mesh with an 8-wide vertex buffer (position,
// texture, normal), a triangle index buffer, named annotation points
// (anatomical anchors), an ordered turn-point sequence, and the original
// construction-time offset recorded for later local-frame reconstruction.
// Only positions are mutated by physics; texture/normal components are
// set once at construction.
type MeshData struct {
	VertexData  [][VertexStride]float32
	IndexData   [][3]uint32
	TextureData map[string]TextureRange
	Annotations map[string]geom.Vec3
	TurnPoints  []geom.Vec3
	OriginArray geom.Vec3

	trimesh *Trimesh
}

// NewMeshData builds a MeshData and immediately snaps it to the origin,
// recording the subtracted offset in OriginArray for later reconstruction.
func NewMeshData(vertexData [][VertexStride]float32, indexData [][3]uint32,
	textureData map[string]TextureRange, annotations map[string]geom.Vec3,
	turnPoints []geom.Vec3) (*MeshData, error) {

	if len(vertexData) < 3 {
		return nil, chk.Err("mesh requires at least 3 vertices, got %d", len(vertexData))
	}
	nv := uint32(len(vertexData))
	for _, tri := range indexData {
		if tri[0] >= nv || tri[1] >= nv || tri[2] >= nv {
			return nil, chk.Err("triangle references out-of-range vertex: %v (nr_vertices=%d)", tri, nv)
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			return nil, chk.Err("degenerate triangle with repeated index: %v", tri)
		}
	}

	if annotations == nil {
		annotations = map[string]geom.Vec3{}
	}

	m := &MeshData{
		VertexData:  vertexData,
		IndexData:   indexData,
		TextureData: textureData,
		Annotations: annotations,
		TurnPoints:  turnPoints,
	}
	m.OriginArray = m.PlaceAtOrigin()
	return m, nil
}

// NrVertices returns the number of vertices in the mesh
func (m *MeshData) NrVertices() int { return len(m.VertexData) }

// Position returns the 3D position of vertex i
func (m *MeshData) Position(i int) geom.Vec3 {
	row := m.VertexData[i]
	return geom.Vec3{X: float64(row[0]), Y: float64(row[1]), Z: float64(row[2])}
}

// SetPosition overwrites the 3D position of vertex i, leaving uv/normal
// untouched
func (m *MeshData) SetPosition(i int, p geom.Vec3) {
	m.VertexData[i][0] = float32(p.X)
	m.VertexData[i][1] = float32(p.Y)
	m.VertexData[i][2] = float32(p.Z)
	m.invalidate()
}

// Position2D returns the (x, y) plane coordinates of vertex i, used by the
// seam resolver which works against the flattened panel contour
func (m *MeshData) Position2D(i int) (x, y float64) {
	row := m.VertexData[i]
	return float64(row[0]), float64(row[1])
}

// invalidate drops the lazily-built Trimesh view; called by every
// operation that moves vertices
func (m *MeshData) invalidate() { m.trimesh = nil }

// GetAnnotation returns the named anchor point, or false if absent
func (m *MeshData) GetAnnotation(name string) (geom.Vec3, bool) {
	p, ok := m.Annotations[name]
	return p, ok
}

// GetTurnPoint returns the i-th turn point, or false if out of range
func (m *MeshData) GetTurnPoint(i int) (geom.Vec3, bool) {
	if i < 0 || i >= len(m.TurnPoints) {
		return geom.Vec3{}, false
	}
	return m.TurnPoints[i], true
}

// PlaceAtOrigin translates the mesh so min(y)==0 and mean(x)==mean(z)==0,
// applying the same offset to annotations and turn points, and returns the
// offset that was subtracted.
func (m *MeshData) PlaceAtOrigin() geom.Vec3 {
	var sumX, sumZ float64
	minY := float64(m.VertexData[0][1])
	for _, row := range m.VertexData {
		sumX += float64(row[0])
		sumZ += float64(row[2])
		if float64(row[1]) < minY {
			minY = float64(row[1])
		}
	}
	n := float64(len(m.VertexData))
	offset := geom.Vec3{X: sumX / n, Y: minY, Z: sumZ / n}

	for i := range m.VertexData {
		m.VertexData[i][0] -= float32(offset.X)
		m.VertexData[i][1] -= float32(offset.Y)
		m.VertexData[i][2] -= float32(offset.Z)
	}
	for name, p := range m.Annotations {
		m.Annotations[name] = p.Sub(offset)
	}
	for i, p := range m.TurnPoints {
		m.TurnPoints[i] = p.Sub(offset)
	}
	m.invalidate()
	return offset
}

// ScaleVertices multiplies positions, annotations, and turn points by s
func (m *MeshData) ScaleVertices(s float64) {
	for i := range m.VertexData {
		m.VertexData[i][0] *= float32(s)
		m.VertexData[i][1] *= float32(s)
		m.VertexData[i][2] *= float32(s)
	}
	for name, p := range m.Annotations {
		m.Annotations[name] = p.Scale(s)
	}
	for i, p := range m.TurnPoints {
		m.TurnPoints[i] = p.Scale(s)
	}
	m.invalidate()
}

// OffsetVertices adds delta to every vertex position. Annotations and turn
// points are only translated along when delta is applied uniformly (no
// mask given): a masked, per-vertex offset is a local adjustment (body
// collision, sewing) and intentionally leaves the logical anchors alone.
func (m *MeshData) OffsetVertices(delta geom.Vec3) {
	for i := range m.VertexData {
		m.VertexData[i][0] += float32(delta.X)
		m.VertexData[i][1] += float32(delta.Y)
		m.VertexData[i][2] += float32(delta.Z)
	}
	for name, p := range m.Annotations {
		m.Annotations[name] = p.Add(delta)
	}
	for i, p := range m.TurnPoints {
		m.TurnPoints[i] = p.Add(delta)
	}
	m.invalidate()
}

// OffsetVerticesMasked adds a distinct delta to each vertex listed in
// indices; annotations and turn points are left untouched.
func (m *MeshData) OffsetVerticesMasked(indices []int, deltas []geom.Vec3) {
	for k, i := range indices {
		d := deltas[k]
		m.VertexData[i][0] += float32(d.X)
		m.VertexData[i][1] += float32(d.Y)
		m.VertexData[i][2] += float32(d.Z)
	}
	m.invalidate()
}

// ClampAboveZero enforces y >= 0 on every vertex, modeling the infinite
// floor at y=0
func (m *MeshData) ClampAboveZero() {
	for i := range m.VertexData {
		if m.VertexData[i][1] < 0 {
			m.VertexData[i][1] = 0
		}
	}
	m.invalidate()
}

// FlipX mirrors the mesh about its current mean x, used for mirrored
// panels
func (m *MeshData) FlipX() {
	var sumX float64
	for _, row := range m.VertexData {
		sumX += float64(row[0])
	}
	meanX := sumX / float64(len(m.VertexData))

	for i := range m.VertexData {
		m.VertexData[i][0] = float32(2*meanX) - m.VertexData[i][0]
	}
	for name, p := range m.Annotations {
		p.X = 2*meanX - p.X
		m.Annotations[name] = p
	}
	for i, p := range m.TurnPoints {
		p.X = 2*meanX - p.X
		m.TurnPoints[i] = p
	}
	m.invalidate()
}

// MatrixMultiply applies a rigid rotation R about origin to positions,
// annotations, and turn points: v <- v.R + (origin - origin.R)
func (m *MeshData) MatrixMultiply(r geom.Mat3, origin geom.Vec3) {
	offset := origin.Sub(r.MulVec(origin))

	for i := range m.VertexData {
		p := m.Position(i)
		p = r.MulVec(p).Add(offset)
		m.SetPosition(i, p)
	}
	for name, p := range m.Annotations {
		m.Annotations[name] = r.MulVec(p).Add(offset)
	}
	for i, p := range m.TurnPoints {
		m.TurnPoints[i] = r.MulVec(p).Add(offset)
	}
	m.invalidate()
}
