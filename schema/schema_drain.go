package schema

import "time"

// VolumeLimit is an athlete-calibrated per-muscle limit.
// MaxSession is the per-session effective set limit and Max is the weekly MRV.
type VolumeLimit struct {
	MaxSession float64 `json:"max_session" yaml:"max_session"`
	Max        float64 `json:"max" yaml:"max"`
	Min        float64 `json:"min,omitempty" yaml:"min,omitempty"`
}

// BatteryCalibration holds user-specific tank deltas in percent of the baseline.
type BatteryCalibration struct {
	CNSDelta       float64   `json:"cns_delta" yaml:"cns_delta"`
	MuscularDelta  float64   `json:"muscular_delta" yaml:"muscular_delta"`
	SpinalDelta    float64   `json:"spinal_delta" yaml:"spinal_delta"`
	LastCalibrated time.Time `json:"last_calibrated,omitempty" yaml:"last_calibrated,omitempty"`
}

// Settings is the read-only athlete configuration consumed by the engine.
type Settings struct {
	AthleteID    string                 `json:"athlete_id" yaml:"athlete_id"`
	BodyweightKg float64                `json:"bodyweight_kg,omitempty" yaml:"bodyweight_kg,omitempty"`
	CalorieGoal  CalorieGoal            `json:"calorie_goal,omitempty" yaml:"calorie_goal,omitempty"`
	LifeStress   StressLevel            `json:"life_stress,omitempty" yaml:"life_stress,omitempty"`
	VolumeLimits map[string]VolumeLimit `json:"volume_limits,omitempty" yaml:"volume_limits,omitempty"`
	Calibration  *BatteryCalibration    `json:"calibration,omitempty" yaml:"calibration,omitempty"`
}

// BatteryTanks are the per-channel capacity ceilings of an athlete.
type BatteryTanks struct {
	CNS      float64 `json:"cns"`
	Muscular float64 `json:"muscular"`
	Spinal   float64 `json:"spinal"`
}

// SetDrainResult is the drain of one set (or a sum of sets) in percent of each tank.
type SetDrainResult struct {
	CNSDrainPct      float64 `json:"cns_drain_pct"`
	MuscularDrainPct float64 `json:"muscular_drain_pct"`
	SpinalDrainPct   float64 `json:"spinal_drain_pct"`
}

// Add returns the channel-wise sum of two drains.
func (d SetDrainResult) Add(o SetDrainResult) SetDrainResult {
	return SetDrainResult{
		CNSDrainPct:      d.CNSDrainPct + o.CNSDrainPct,
		MuscularDrainPct: d.MuscularDrainPct + o.MuscularDrainPct,
		SpinalDrainPct:   d.SpinalDrainPct + o.SpinalDrainPct,
	}
}

// Total returns the sum over all three channels.
func (d SetDrainResult) Total() float64 {
	return d.CNSDrainPct + d.MuscularDrainPct + d.SpinalDrainPct
}

// Get returns the drain of a single channel.
func (d SetDrainResult) Get(ch Channel) float64 {
	switch ch {
	case CNSChannel:
		return d.CNSDrainPct
	case SpinalChannel:
		return d.SpinalDrainPct
	default:
		return d.MuscularDrainPct
	}
}
