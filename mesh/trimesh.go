package mesh

import (
	"math"

	"github.com/Mazchoo/sewsim/geom"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
)

// rayDirection is the fixed ray used by the odd/even crossing containment
// test; any direction not parallel to a mesh face works, chosen here to
// avoid axis-aligned degeneracies with the flat cloth panels
var rayDirection = geom.Vec3{X: 0.6123, Y: 0.7882, Z: 0.0616}.Normalize()

// triangle is a cached face of the mesh: its three vertex positions,
// outward normal, and centroid (used to seed the spatial bins)
type triangle struct {
	a, b, c  geom.Vec3
	normal   geom.Vec3
	centroid geom.Vec3
}

// Trimesh is the lazily built triangle + face-normal + spatial-index view
// of a MeshData, used for nearest-surface-point and point-containment
// queries. It is invalidated whenever the owning MeshData's vertices move.
type Trimesh struct {
	triangles []triangle
	bins      gm.Bins
}

// Trimesh builds (or returns the cached) triangle view of the mesh
func (m *MeshData) Trimesh() *Trimesh {
	if m.trimesh != nil {
		return m.trimesh
	}
	t := &Trimesh{triangles: make([]triangle, 0, len(m.IndexData))}

	xmin := []float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	xmax := []float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, tri := range m.IndexData {
		a, b, c := m.Position(int(tri[0])), m.Position(int(tri[1])), m.Position(int(tri[2]))
		normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		centroid := a.Add(b).Add(c).Scale(1.0 / 3.0)
		t.triangles = append(t.triangles, triangle{a: a, b: b, c: c, normal: normal, centroid: centroid})

		for _, p := range [3]geom.Vec3{a, b, c} {
			xmin[0], xmax[0] = math.Min(xmin[0], p.X), math.Max(xmax[0], p.X)
			xmin[1], xmax[1] = math.Min(xmin[1], p.Y), math.Max(xmax[1], p.Y)
			xmin[2], xmax[2] = math.Min(xmin[2], p.Z), math.Max(xmax[2], p.Z)
		}
	}

	if len(t.triangles) > 0 {
		ndiv := []int{16, 16, 16}
		if err := t.bins.Init(xmin, xmax, ndiv); err != nil {
			chk.Panic("trimesh: failed to initialise spatial bins: %v", err)
		}
		for i, tri := range t.triangles {
			c := tri.centroid
			if err := t.bins.Append([]float64{c.X, c.Y, c.Z}, i); err != nil {
				chk.Panic("trimesh: failed to index triangle %d: %v", i, err)
			}
		}
	}

	m.trimesh = t
	return t
}

// closestPointOnTriangle returns the point on triangle tr closest to q
func closestPointOnTriangle(tr triangle, q geom.Vec3) geom.Vec3 {
	ab := tr.b.Sub(tr.a)
	ac := tr.c.Sub(tr.a)
	ap := q.Sub(tr.a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return tr.a
	}

	bp := q.Sub(tr.b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return tr.b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return tr.a.Add(ab.Scale(v))
	}

	cp := q.Sub(tr.c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return tr.c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return tr.a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return tr.b.Add(tr.c.Sub(tr.b).Scale(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return tr.a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// nearbyTriangles returns a short-list of triangles worth testing exactly
// against q: the bin-nearest centroid's triangle plus up to eight faces on
// either side of it in face-index order, falling back to a full scan for
// small meshes (64 triangles or fewer) or when the bins report nothing (q
// outside the indexed bounding box).
func (t *Trimesh) nearbyTriangles(q geom.Vec3) []int {
	if len(t.triangles) <= 64 {
		out := make([]int, len(t.triangles))
		for i := range out {
			out[i] = i
		}
		return out
	}
	id, _, err := t.bins.FindClosest([]float64{q.X, q.Y, q.Z})
	if err != nil || id < 0 {
		out := make([]int, len(t.triangles))
		for i := range out {
			out[i] = i
		}
		return out
	}
	// widen the short-list to the bin-nearest triangle's immediate
	// neighbours in face-index space, since adjacent triangles are the
	// likeliest true-closest candidates when the centroid match is off
	lo, hi := id-8, id+8
	if lo < 0 {
		lo = 0
	}
	if hi > len(t.triangles) {
		hi = len(t.triangles)
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// NearestSurfacePoint returns the closest point on the mesh surface to q
// and that triangle's outward face normal.
func (t *Trimesh) NearestSurfacePoint(q geom.Vec3) (point, normal geom.Vec3) {
	best := math.Inf(1)
	for _, idx := range t.nearbyTriangles(q) {
		tr := t.triangles[idx]
		p := closestPointOnTriangle(tr, q)
		d := p.Sub(q).Norm()
		if d < best {
			best = d
			point = p
			normal = tr.normal
		}
	}
	return
}

// ClosestNormalOnMesh returns the point offset distance d along the
// surface normal closest to q, and that normal
func (t *Trimesh) ClosestNormalOnMesh(q geom.Vec3, d float64) (geom.Vec3, geom.Vec3) {
	p, n := t.NearestSurfacePoint(q)
	return p.Add(n.Scale(d)), n
}

// Contains reports whether q is inside the closed mesh, using a parity
// ray-cast along a fixed, non-axis-aligned direction.
func (t *Trimesh) Contains(q geom.Vec3) bool {
	crossings := 0
	for _, tr := range t.triangles {
		if rayIntersectsTriangle(q, rayDirection, tr) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayIntersectsTriangle implements the Möller–Trumbore ray/triangle test
func rayIntersectsTriangle(origin, dir geom.Vec3, tr triangle) bool {
	const eps = 1e-9
	edge1 := tr.b.Sub(tr.a)
	edge2 := tr.c.Sub(tr.a)
	h := dir.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < eps {
		return false
	}
	f := 1.0 / a
	s := origin.Sub(tr.a)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(edge1)
	v := f * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}
	t := f * edge2.Dot(q)
	return t > eps
}
