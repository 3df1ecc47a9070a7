// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements small, fixed-size 3D vector and matrix helpers
// used to place and bend cloth panels against an avatar mesh.
package geom

import "math"

// Vec3 holds a point or direction in 3D space
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a+b
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }

// Sub returns a-b
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Scale returns a*s
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }

// Dot returns the dot product a.b
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Cross returns the cross product a x b
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of a
func (a Vec3) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector in the direction of a; returns the zero
// vector if a has zero length
func (a Vec3) Normalize() Vec3 {
	n := a.Norm()
	if n == 0 {
		return Vec3{}
	}
	return a.Scale(1 / n)
}

// IsZero reports whether a has zero length
func (a Vec3) IsZero() bool { return a.X == 0 && a.Y == 0 && a.Z == 0 }

// Mat3 is a 3x3 matrix stored row-major; vectors are treated as row vectors
// multiplied on the right, matching the convention v' = v . M used
// throughout the placement routines
type Mat3 [3][3]float64

// Identity returns the 3x3 identity matrix
func Identity() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// MulVec returns v.M (v treated as a row vector)
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// MulMat returns the matrix product a.b
func (a Mat3) MulMat(b Mat3) (out Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return
}

// Transpose returns the transpose of m
func (m Mat3) Transpose() (out Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][i] = m[i][j]
		}
	}
	return
}

// columns builds a matrix whose columns are the given basis vectors (v,
// u, w), matching MulVec's row-vector convention
func columns(v, u, w Vec3) Mat3 {
	return Mat3{
		{v.X, u.X, w.X},
		{v.Y, u.Y, w.Y},
		{v.Z, u.Z, w.Z},
	}
}
