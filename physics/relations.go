// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package physics implements the mass-spring cloth core: per-panel
// dynamic state, stress/shear/bend/friction force rules, velocity and
// position integration with schedule-dependent damping, body-collision
// projection, and sewing attraction.
package physics

import "math"

// VertexRelations holds the neighbor-index lists extracted from a
// panel's discretization grid. Stress and shear pairs are unordered
// two-vertex links; bend triples are (a, m, b) with rest configuration
// collinear, m at the midpoint of a and b.
type VertexRelations struct {
	Stress [][2]uint32
	Shear  [][2]uint32
	Bend   [][3]uint32
}

// NewVertexRelations copies the given relation lists into a VertexRelations
func NewVertexRelations(stress, shear [][2]uint32, bend [][3]uint32) *VertexRelations {
	return &VertexRelations{Stress: stress, Shear: shear, Bend: bend}
}

// restingDiagonal returns L*sqrt(2), the shear rest length, given the
// straight grid spacing L
func restingDiagonal(l float64) float64 { return l * math.Sqrt2 }
