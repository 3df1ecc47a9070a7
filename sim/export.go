package sim

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// frameJSON is the on-disk shape of one exported frame: its step and a
// map of piece name to flat [x0,y0,z0, x1,y1,z1, ...] position list.
type frameJSON struct {
	Step      int                  `json:"step"`
	Positions map[string][]float64 `json:"positions"`
}

// WriteJSON serializes every recorded frame to a single JSON file: an
// array of {step, positions} objects. The core frame recorder only owns
// the in-memory history; this is the on-disk interface for a viewer.
func (s *FabricSimulation) WriteJSON(path string) error {
	out := make([]frameJSON, len(s.Frames))
	for i, frame := range s.Frames {
		positions := make(map[string][]float64, len(frame.Positions))
		for name, verts := range frame.Positions {
			flat := make([]float64, 0, len(verts)*3)
			for _, v := range verts {
				flat = append(flat, v.X, v.Y, v.Z)
			}
			positions[name] = flat
		}
		out[i] = frameJSON{Step: frame.Step, Positions: positions}
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return chk.Err("cannot marshal frames: %v", err)
	}

	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	io.WriteFileSD(dir, file, string(raw))
	return nil
}
