package core

import (
	"math"

	"github.com/rotnitxe/kpknfit/schema"
)

// Tunable constants of the volume recommendation engine.
const (
	DefaultFrequency = 2

	defaultMinSets = 10 // neutral recommendation without a profile
	defaultMaxSets = 20

	feedbackWindow       = 3
	recoveryDebtFactor   = 0.85
	undertrainingFactor  = 1.1
	highDOMS             = 3.5
	lowDOMS              = 1.5
	lowStrength          = 5.0
	highStrength         = 8.0
	sessionMaxSets       = 12.0
	sessionWarnSets      = 10.0
	deficitSessionFactor = 0.8
)

// Recommend computes the weekly volume targets of one muscle. A nil profile
// yields the neutral default recommendation.
func Recommend(muscle string, profile *schema.AthleteProfile, phase schema.TrainingPhase, intensity schema.IntensityTier, frequency int) schema.VolumeRecommendation {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	if profile == nil {
		return DefaultRecommendation(muscle, frequency)
	}

	scaled := Modulate(Classify(ComputeScore(*profile)), phase, intensity, muscle)
	frequencyCap := schema.SessionSetCeiling * frequency

	maxAdaptive := min(roundInt(scaled.Max), frequencyCap)
	minEffective := min(max(1, roundInt(scaled.Min)), maxAdaptive)

	return schema.VolumeRecommendation{
		MuscleGroup:          muscle,
		MinEffectiveVolume:   minEffective,
		MaxAdaptiveVolume:    maxAdaptive,
		MaxRecoverableVolume: roundInt(float64(maxAdaptive) * schema.RecoverableMultiplier),
		FrequencyCap:         frequencyCap,
	}
}

// DefaultRecommendation is the neutral recommendation used when no profile exists.
func DefaultRecommendation(muscle string, frequency int) schema.VolumeRecommendation {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	frequencyCap := schema.SessionSetCeiling * frequency
	maxAdaptive := min(defaultMaxSets, frequencyCap)
	return schema.VolumeRecommendation{
		MuscleGroup:          muscle,
		MinEffectiveVolume:   min(defaultMinSets, maxAdaptive),
		MaxAdaptiveVolume:    maxAdaptive,
		MaxRecoverableVolume: roundInt(float64(maxAdaptive) * schema.RecoverableMultiplier),
		FrequencyCap:         frequencyCap,
	}
}

// RecommendMany recommends volume for several muscles in the given order.
// Muscle names are normalized first.
func RecommendMany(muscles []string, profile *schema.AthleteProfile, phase schema.TrainingPhase, intensity schema.IntensityTier, frequency int) []schema.VolumeRecommendation {
	out := make([]schema.VolumeRecommendation, 0, len(muscles))
	for _, m := range muscles {
		out = append(out, Recommend(schema.NormalizeMuscle(m), profile, phase, intensity, frequency))
	}
	return out
}

// FeedbackFactor derives the volume multiplier from the most recent feedback entries.
func FeedbackFactor(feedback []schema.Feedback) schema.FeedbackAdjustment {
	if len(feedback) == 0 {
		return schema.FeedbackAdjustment{Factor: 1.0, Reason: schema.OptimalReason}
	}
	recent := feedback
	if len(recent) > feedbackWindow {
		recent = recent[len(recent)-feedbackWindow:]
	}
	var doms, strength float64
	for _, f := range recent {
		doms += f.DOMS
		strength += f.Strength
	}
	doms /= float64(len(recent))
	strength /= float64(len(recent))

	switch {
	case doms >= highDOMS || strength <= lowStrength:
		return schema.FeedbackAdjustment{Factor: recoveryDebtFactor, Reason: schema.RecoveryDebtReason}
	case doms <= lowDOMS && strength >= highStrength:
		return schema.FeedbackAdjustment{Factor: undertrainingFactor, Reason: schema.UndertrainingReason}
	default:
		return schema.FeedbackAdjustment{Factor: 1.0, Reason: schema.OptimalReason}
	}
}

// AdjustForFeedback scales a recommendation by the recent-feedback factor while
// keeping min <= max <= recoverable and max <= frequency cap.
func AdjustForFeedback(rec schema.VolumeRecommendation, feedback []schema.Feedback) (schema.VolumeRecommendation, schema.FeedbackAdjustment) {
	adj := FeedbackFactor(feedback)
	if adj.Factor == 1.0 {
		return rec, adj
	}
	maxAdaptive := max(1, min(roundInt(float64(rec.MaxAdaptiveVolume)*adj.Factor), rec.FrequencyCap))
	minEffective := min(max(1, roundInt(float64(rec.MinEffectiveVolume)*adj.Factor)), maxAdaptive)
	rec.MaxAdaptiveVolume = maxAdaptive
	rec.MinEffectiveVolume = minEffective
	rec.MaxRecoverableVolume = roundInt(float64(maxAdaptive) * schema.RecoverableMultiplier)
	return rec, adj
}

// RecommendLifts returns the weekly number-of-lifts band for strength-focused blocks.
func RecommendLifts(band schema.CapacityBand, phase schema.TrainingPhase) schema.LiftsRecommendation {
	monthlyMin, monthlyMax := 1000.0, 1300.0
	if band == schema.AdvancedBand {
		monthlyMin, monthlyMax = 1300.0, 2500.0
	}
	f := schema.GetPhaseFactor(phase)
	return schema.LiftsRecommendation{
		Level:    band,
		Phase:    phase,
		MinLifts: roundInt(monthlyMin / 4 * f),
		MaxLifts: roundInt(monthlyMax / 4 * f),
	}
}

// ValidateSessionVolume checks the sets planned for one muscle in one session.
// A deficit shrinks both the hard limit and the warning level.
func ValidateSessionVolume(sets int, goal schema.CalorieGoal) schema.SessionVolumeCheck {
	limit, warn := sessionMaxSets, sessionWarnSets
	if goal == schema.DeficitGoal {
		limit *= deficitSessionFactor
		warn *= deficitSessionFactor
	}
	return schema.SessionVolumeCheck{
		Sets:      sets,
		Max:       limit,
		Warning:   warn,
		OverLimit: float64(sets) > limit,
		Warn:      float64(sets) >= warn,
	}
}

// roundInt rounds half away from zero.
func roundInt(v float64) int {
	return int(math.Round(v))
}
