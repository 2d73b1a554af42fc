package schema

// AthleteProfile holds the self-reported capability inputs of an athlete.
// Sub-scores are in {1,2,3}; RecoveryCapacity is in {-1,0,1}.
type AthleteProfile struct {
	TechnicalScore   int `json:"technical_score" yaml:"technical_score"`
	ConsistencyScore int `json:"consistency_score" yaml:"consistency_score"`
	StrengthStandard int `json:"strength_standard" yaml:"strength_standard"`
	RecoveryCapacity int `json:"recovery_capacity" yaml:"recovery_capacity"`
}

// Classification is the band an athlete score falls into.
type Classification struct {
	Score int          `json:"score"`
	Band  CapacityBand `json:"band"`
	Range VolumeRange  `json:"range"`
}

// VolumeRecommendation holds the weekly set targets for one muscle group.
type VolumeRecommendation struct {
	MuscleGroup          string `json:"muscle_group"`
	MinEffectiveVolume   int    `json:"min_effective_volume"`
	MaxAdaptiveVolume    int    `json:"max_adaptive_volume"`
	MaxRecoverableVolume int    `json:"max_recoverable_volume"`
	FrequencyCap         int    `json:"frequency_cap"`
}

// Feedback is a post-session self report used to nudge recommendations.
// DOMS is soreness on a 0-5 scale and Strength is perceived performance on 1-10.
type Feedback struct {
	DOMS     float64 `json:"doms" yaml:"doms"`
	Strength float64 `json:"strength" yaml:"strength"`
}

// FeedbackAdjustment describes the multiplier derived from recent feedback.
type FeedbackAdjustment struct {
	Factor float64 `json:"factor"`
	Reason string  `json:"reason"`
}

// Feedback adjustment reasons.
const (
	RecoveryDebtReason  = "recovery_debt"
	UndertrainingReason = "undertraining"
	OptimalReason       = "optimal"
)

// LiftsRecommendation is a weekly number-of-lifts target for strength blocks.
type LiftsRecommendation struct {
	Level    CapacityBand  `json:"level"`
	Phase    TrainingPhase `json:"phase"`
	MinLifts int           `json:"min_lifts"`
	MaxLifts int           `json:"max_lifts"`
}

// SessionVolumeCheck is the verdict on the number of sets planned for one muscle in one session.
type SessionVolumeCheck struct {
	Sets      int     `json:"sets"`
	Max       float64 `json:"max"`
	Warning   float64 `json:"warning"`
	OverLimit bool    `json:"over_limit"`
	Warn      bool    `json:"warn"`
}

// AthleteFile is the on-disk form of one athlete: profile, settings and
// per-muscle feedback history. It seeds the settings store.
type AthleteFile struct {
	Profile  *AthleteProfile       `json:"profile,omitempty" yaml:"profile,omitempty"`
	Settings Settings              `json:"settings" yaml:"settings"`
	Feedback map[string][]Feedback `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}
