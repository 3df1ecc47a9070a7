package geom

import "math"

// DistanceToLine returns the perpendicular distance from point to the
// infinite line through origin with direction vector (not required to be
// a unit vector; normalized internally)
func DistanceToLine(point, origin, vector Vec3) float64 {
	v := vector.Normalize()
	offset := point.Sub(origin)
	return offset.Cross(v).Norm()
}

// ClosestLineIndex returns, for each query point, the index of the line
// (sharing direction vector but varying origin) that it is closest to
func ClosestLineIndex(points []Vec3, lineOrigins []Vec3, vector Vec3) []int {
	out := make([]int, len(points))
	for i, p := range points {
		best := math.Inf(1)
		bestIdx := 0
		for j, origin := range lineOrigins {
			d := DistanceToLine(p, origin, vector)
			if d < best {
				best = d
				bestIdx = j
			}
		}
		out[i] = bestIdx
	}
	return out
}

// ProjectOntoLine returns the signed distance of point's projection onto
// the line through origin with unit direction vector
func ProjectOntoLine(point, origin, vector Vec3) float64 {
	return point.Sub(origin).Dot(vector)
}

// RotationPlane holds the precomputed trigonometry and axis for rotating
// points in the plane perpendicular to a 3D line, matching
// RotationPlaneData in the reference implementation
type RotationPlane struct {
	CosTheta   float64
	SinTheta   float64
	LineOrigin Vec3
	LineVector Vec3
}

// NewRotationPlane builds a RotationPlane for rotating by angle theta
// (radians) about the line through origin with unit direction vector
func NewRotationPlane(theta float64, origin, vector Vec3) RotationPlane {
	return RotationPlane{
		CosTheta:   math.Cos(theta),
		SinTheta:   math.Sin(theta),
		LineOrigin: origin,
		LineVector: vector,
	}
}

// RotateInPlane rotates point about the line described by plane using the
// Rodrigues rotation identity
func RotateInPlane(point Vec3, plane RotationPlane) Vec3 {
	pv := point.Sub(plane.LineOrigin)

	rotated := pv.Scale(plane.CosTheta)
	rotated = rotated.Add(plane.LineVector.Cross(pv).Scale(plane.SinTheta))
	rotated = rotated.Add(plane.LineVector.Scale(plane.LineVector.Dot(pv) * (1 - plane.CosTheta)))

	return plane.LineOrigin.Add(rotated)
}

// BendAroundLineAdjustment returns the adjustment vector that moves
// currentPoint so that its distance from prevPoint is preserved while its
// direction is rotated towards the target produced by RotateInPlane. On
// degenerate input (coincident points, or a rotated target that coincides
// with prevPoint) the zero vector is returned and the caller is expected to
// log and skip the adjustment.
func BendAroundLineAdjustment(currentPoint, prevPoint Vec3, plane RotationPlane) Vec3 {
	vector := currentPoint.Sub(prevPoint)
	pointDistance := vector.Norm()
	if pointDistance == 0 {
		return Vec3{}
	}

	targetPoint := RotateInPlane(currentPoint, plane)
	targetVector := targetPoint.Sub(prevPoint)
	targetNorm := targetVector.Norm()
	if targetNorm == 0 {
		return Vec3{}
	}

	return targetVector.Scale(pointDistance / targetNorm)
}
