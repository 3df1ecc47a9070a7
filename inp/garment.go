// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the JSON input data for a garment simulation:
// the sewing pattern, the avatar body mesh, and the global parameter
// table.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// BodyPoint names an anatomical anchor defined by a fraction along the
// contour between two turn points
type BodyPoint struct {
	Name    string  `json:"name"`
	TPBegin int     `json:"tp_begin"`
	TPEnd   int     `json:"tp_end"`
	Marker  float64 `json:"marker"`
	Flip    bool    `json:"flip"`
}

// BodyPoints holds the snap and alignment anchors of one piece
type BodyPoints struct {
	Snap      BodyPoint `json:"snap"`
	Alignment BodyPoint `json:"alignment"`
}

// PieceData is one panel entry from the garment JSON; contour, bounding
// box, and turn points are in centimetres.
type PieceData struct {
	Contour         [][2]float64 `json:"contour"`
	BoundingBox     [2][2]float64 `json:"bounding_box"`
	TurnPoints      [][2]float64 `json:"turn_points"`
	Cog             [2]float64   `json:"cog"`
	BodyPoints      BodyPoints   `json:"body_points"`
	WrapsAroundBody bool         `json:"wraps_around_body"`
}

// SeamSide identifies one side of a sewing pair: a piece and the
// fractional contour span on it that gets sewn
type SeamSide struct {
	Piece        string  `json:"piece"`
	TPIndexStart int     `json:"tp_index_start"`
	TPIndexEnd   int     `json:"tp_index_end"`
	MarkerStart  float64 `json:"marker_start"`
	MarkerEnd    float64 `json:"marker_end"`
}

// SeamEntry pairs two sides to be sewn together
type SeamEntry struct {
	From SeamSide `json:"from"`
	To   SeamSide `json:"to"`
}

// Garment is the full sewing-pattern JSON payload: every piece and every
// seam between them
type Garment struct {
	Pieces map[string]PieceData `json:"pieces"`
	Sewing []SeamEntry           `json:"sewing"`
}

// Clean releases nothing; present for symmetry with inp.Simulation.Clean
// and so callers can treat Garment like the rest of the input objects.
func (g *Garment) Clean() {}

// ReadGarment reads and decodes a sewing_*.json file
func ReadGarment(path string) (*Garment, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read garment file %q:\n%v", path, err)
	}
	var g Garment
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, chk.Err("cannot parse garment file %q:\n%v", path, err)
	}
	if len(g.Pieces) == 0 {
		return nil, chk.Err("garment file %q defines no pieces", path)
	}
	return &g, nil
}
