package geom

import "math"

// Contour is a closed polyline in the plane (or, for seam resolution, a
// 2D contour embedded at z=0 in a panel's local frame). Points are not
// required to repeat the first point at the end; closure is implied.
type Contour struct {
	Points []Vec3
}

// segment returns the i-th edge of the closed contour, wrapping from the
// last point back to the first
func (c Contour) segment(i int) (a, b Vec3) {
	n := len(c.Points)
	return c.Points[i], c.Points[(i+1)%n]
}

// Length returns the total perimeter of the contour
func (c Contour) Length() float64 {
	var total float64
	for i := range c.Points {
		a, b := c.segment(i)
		total += b.Sub(a).Norm()
	}
	return total
}

// Project returns the arc-length distance, measured from Points[0] going
// forward around the ring, to the point on the contour closest to q
func (c Contour) Project(q Vec3) float64 {
	var (
		best       = math.Inf(1)
		bestMarker float64
		cum        float64
	)
	for i := range c.Points {
		a, b := c.segment(i)
		edge := b.Sub(a)
		edgeLen := edge.Norm()
		t := 0.0
		if edgeLen > 0 {
			t = clamp01(q.Sub(a).Dot(edge) / (edgeLen * edgeLen))
		}
		proj := a.Add(edge.Scale(t))
		d := q.Sub(proj).Norm()
		if d < best {
			best = d
			bestMarker = cum + t*edgeLen
		}
		cum += edgeLen
	}
	return bestMarker
}

// Interpolate returns the point on the contour at arc-length marker from
// Points[0], wrapping around the ring as needed
func (c Contour) Interpolate(marker float64) Vec3 {
	total := c.Length()
	if total == 0 {
		return c.Points[0]
	}
	m := math.Mod(marker, total)
	if m < 0 {
		m += total
	}
	var cum float64
	for i := range c.Points {
		a, b := c.segment(i)
		edgeLen := b.Sub(a).Norm()
		if m <= cum+edgeLen || i == len(c.Points)-1 {
			if edgeLen == 0 {
				return a
			}
			t := clamp01((m - cum) / edgeLen)
			return a.Add(b.Sub(a).Scale(t))
		}
		cum += edgeLen
	}
	return c.Points[len(c.Points)-1]
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// PointOnContour projects a and b onto the contour, linearly interpolates
// their markers by t, and samples the contour at that interpolated
// marker. If the projected marker of b wraps back to 0 while a's marker
// is further along the ring, b's marker is treated as the full contour
// length so the interpolation does not run backwards.
func PointOnContour(c Contour, a, b Vec3, t float64) Vec3 {
	startMarker := c.Project(a)
	endMarker := c.Project(b)
	if startMarker > endMarker && endMarker == 0 {
		endMarker = c.Length()
	}
	return c.Interpolate(startMarker + t*(endMarker-startMarker))
}

// PointsAlongContour returns n uniformly spaced samples between
// fractional markers t0 and t1 of the segment from a to b
func PointsAlongContour(c Contour, a, b Vec3, t0, t1 float64, n int) []Vec3 {
	startMarker := c.Project(a)
	endMarker := c.Project(b)

	out := make([]Vec3, 0, n)
	if n <= 1 {
		fraction := t0
		if n == 1 {
			out = append(out, c.Interpolate(startMarker+fraction*(endMarker-startMarker)))
		}
		return out
	}
	step := (t1 - t0) / float64(n-1)
	for i := 0; i < n; i++ {
		fraction := t0 + step*float64(i)
		marker := startMarker + fraction*(endMarker-startMarker)
		out = append(out, c.Interpolate(marker))
	}
	return out
}

// LengthAlongContour returns the arc length of the segment between
// fractional markers t0 and t1 of the a-to-b span
func LengthAlongContour(c Contour, a, b Vec3, t0, t1 float64) float64 {
	markerDistance := c.Project(b) - c.Project(a)
	return math.Abs(markerDistance * (t1 - t0))
}
