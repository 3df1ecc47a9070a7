package mesh

import (
	"math"
	"testing"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/cpmech/gosl/chk"
)

func square() *MeshData {
	vertexData := [][VertexStride]float32{
		{0, 1, 0, 0, 0, 0, 0, 1},
		{1, 1, 0, 1, 0, 0, 0, 1},
		{1, 2, 0, 1, 1, 0, 0, 1},
		{0, 2, 0, 0, 1, 0, 0, 1},
	}
	triangles := [][3]uint32{{0, 1, 2}, {2, 3, 0}}
	annotations := map[string]geom.Vec3{"center": {X: 0.5, Y: 1.5, Z: 0}}
	m, err := NewMeshData(vertexData, triangles, nil, annotations, nil)
	if err != nil {
		panic(err)
	}
	return m
}

func TestPlaceAtOrigin(tst *testing.T) {
	chk.PrintTitle("PlaceAtOrigin")
	m := square()

	minY := math.Inf(1)
	var sumX, sumZ float64
	for i := 0; i < m.NrVertices(); i++ {
		p := m.Position(i)
		if p.Y < minY {
			minY = p.Y
		}
		sumX += p.X
		sumZ += p.Z
	}
	n := float64(m.NrVertices())
	chk.Scalar(tst, "min(y)", 1e-12, minY, 0)
	chk.Scalar(tst, "mean(x)", 1e-6, sumX/n, 0)
	chk.Scalar(tst, "mean(z)", 1e-6, sumZ/n, 0)
}

func TestFlipXTwiceIsIdentity(tst *testing.T) {
	chk.PrintTitle("FlipXTwiceIsIdentity")
	m := square()
	before := make([]geom.Vec3, m.NrVertices())
	for i := range before {
		before[i] = m.Position(i)
	}

	m.FlipX()
	m.FlipX()

	for i := range before {
		got := m.Position(i)
		chk.Vector(tst, "position", 1e-6,
			[]float64{got.X, got.Y, got.Z}, []float64{before[i].X, before[i].Y, before[i].Z})
	}
}

func TestMatrixMultiplyRoundTrip(tst *testing.T) {
	chk.PrintTitle("MatrixMultiplyRoundTrip")
	m := square()
	before := make([]geom.Vec3, m.NrVertices())
	for i := range before {
		before[i] = m.Position(i)
	}

	r := geom.RotationBetween(geom.Vec3{X: 1, Y: 0, Z: 0}, geom.Vec3{X: 0, Y: 1, Z: 0})
	origin := geom.Vec3{X: 0, Y: 0, Z: 0}

	m.MatrixMultiply(r, origin)
	m.MatrixMultiply(r.Transpose(), origin)

	for i := range before {
		got := m.Position(i)
		chk.Vector(tst, "position", 1e-5,
			[]float64{got.X, got.Y, got.Z}, []float64{before[i].X, before[i].Y, before[i].Z})
	}
}

func TestIndexDataInBounds(tst *testing.T) {
	chk.PrintTitle("IndexDataInBounds")
	m := square()
	nv := uint32(m.NrVertices())
	for _, tri := range m.IndexData {
		for _, idx := range tri {
			if idx >= nv {
				tst.Fatalf("index %d out of range (nr_vertices=%d)", idx, nv)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			tst.Fatalf("degenerate triangle %v", tri)
		}
	}
}

func TestOffsetVerticesMaskedLeavesAnnotations(tst *testing.T) {
	chk.PrintTitle("OffsetVerticesMaskedLeavesAnnotations")
	m := square()
	before, _ := m.GetAnnotation("center")

	deltas := make([]geom.Vec3, m.NrVertices())
	indices := make([]int, m.NrVertices())
	for i := range indices {
		indices[i] = i
		deltas[i] = geom.Vec3{X: 1, Y: 1, Z: 1}
	}
	m.OffsetVerticesMasked(indices, deltas)

	after, _ := m.GetAnnotation("center")
	chk.Vector(tst, "annotation unchanged", 1e-9,
		[]float64{after.X, after.Y, after.Z}, []float64{before.X, before.Y, before.Z})
}
