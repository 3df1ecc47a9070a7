package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Params holds every global simulation parameter. JSON tags allow a
// scenario file to override any subset; DefaultParams returns the
// reference constant table.
type Params struct {
	NrSteps               int     `json:"nr_steps"`
	AvatarScaling         float64 `json:"avatar_scaling"`
	VertexResolution      float64 `json:"vertex_resolution"`
	Gravity               float64 `json:"gravity"`
	MaxTensileVelocity    float64 `json:"max_tensile_velocity"`
	TimeDelta             float64 `json:"time_delta"`
	StressWeighting       float64 `json:"stress_weighting"`
	StressThreshold       float64 `json:"stress_threshold"`
	ShearWeighting        float64 `json:"shear_weighting"`
	ShearThreshold        float64 `json:"shear_threshold"`
	BendWeighting         float64 `json:"bend_weighting"`
	BendThreshold         float64 `json:"bend_threshold"`
	CmPerM                float64 `json:"cm_per_m"`
	FrictionConstant      float64 `json:"friction_constant"`
	VelocityDampingStart  float64 `json:"velocity_damping_start"`
	VelocityDampingEnd    float64 `json:"velocity_damping_end"`
	RunCollisionDetection bool    `json:"run_collision_detection"`
	DistanceFromBody      float64 `json:"distance_from_body"`
	SewingSpacing         float64 `json:"sewing_spacing"`
	SewingAdjustmentStep  float64 `json:"sewing_adjustment_step"`
	WrapRadians           float64 `json:"wrap_radians"`
}

// DefaultParams returns the literal reference constant table
func DefaultParams() *Params {
	return &Params{
		NrSteps:               200,
		AvatarScaling:         0.7,
		VertexResolution:      1,
		Gravity:               9.81,
		MaxTensileVelocity:    0.5,
		TimeDelta:             0.01,
		StressWeighting:       600,
		StressThreshold:       0.05,
		ShearWeighting:        300,
		ShearThreshold:        0.05,
		BendWeighting:         150,
		BendThreshold:         0.05,
		CmPerM:                100,
		FrictionConstant:      0.05,
		VelocityDampingStart:  1.0,
		VelocityDampingEnd:    0.25,
		RunCollisionDetection: true,
		DistanceFromBody:      0.025,
		SewingSpacing:         0.01,
		SewingAdjustmentStep:  12,
		WrapRadians:           0.4,
	}
}

// ReadParams reads a JSON parameter override file and fills in any field
// left unset with the default value
func ReadParams(path string) (*Params, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read params file %q:\n%v", path, err)
	}
	p := DefaultParams()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, chk.Err("cannot parse params file %q:\n%v", path, err)
	}
	return p, nil
}
