package core

import "github.com/rotnitxe/kpknfit/schema"

const (
	defaultRPE        = 7.0
	failureRPE        = 11.0
	technicalFloorRPE = 10.0
	effectiveSetRPE   = 6.0

	dropSetBonus   = 1.5
	restPauseBonus = 1.0
	partialsBonus  = 0.5
	partialRepCost = 0.5

	// neutralOpenReps stands in for an AMRAP or to-failure set logged without reps.
	neutralOpenReps = 8
)

// EffectiveRPE resolves the perceived effort of a set. Completed values win
// over targets and RPE wins over RIR. Failure and AMRAP push the value past 10,
// and intensity techniques add on top of that.
func EffectiveRPE(set schema.ExerciseSet) float64 {
	rpe := defaultRPE
	switch {
	case set.CompletedRPE > 0:
		rpe = set.CompletedRPE
	case set.TargetRPE > 0:
		rpe = set.TargetRPE
	case set.CompletedRIR != nil:
		rpe = 10 - float64(*set.CompletedRIR)
	case set.TargetRIR != nil:
		rpe = 10 - float64(*set.TargetRIR)
	}
	rpe = min(max(rpe, 1), 10)

	if set.ToFailure || set.AMRAP || set.PerformanceMode == schema.PerformanceFailed {
		rpe = max(rpe, failureRPE)
	}

	bonus := float64(set.DropSets)*dropSetBonus + float64(set.RestPauses)*restPauseBonus
	if set.Partials > 0 {
		bonus += partialsBonus
	}
	if bonus > 0 {
		rpe = max(rpe+bonus, technicalFloorRPE)
	}
	return rpe
}

// EffortMultiplier weights a set's contribution to effective volume by how close to failure it went.
func EffortMultiplier(set schema.ExerciseSet) float64 {
	rpe := EffectiveRPE(set)
	switch {
	case rpe >= 10:
		return 1.2
	case rpe >= 8:
		return 1.0
	default:
		return 0.6
	}
}

// IsSetEffective reports whether a set was hard enough to count as a stimulus.
func IsSetEffective(set schema.ExerciseSet) bool {
	return EffectiveRPE(set) >= effectiveSetRPE
}

// IsFailureSet reports whether a set reached or went beyond momentary failure.
func IsFailureSet(set schema.ExerciseSet) bool {
	return set.ToFailure || set.AMRAP || set.PerformanceMode == schema.PerformanceFailed || EffectiveRPE(set) >= 10
}

// EffectiveReps counts the repetitions a set actually imposed, including
// partials at half weight and the reps of drops and rest-pause clusters.
// Open-ended sets (AMRAP or to failure) planned without reps count as
// neutralOpenReps.
func EffectiveReps(set schema.ExerciseSet) float64 {
	base := max(set.Reps, 0)
	if base == 0 && (set.AMRAP || set.ToFailure) {
		base = neutralOpenReps
	}
	reps := float64(base) +
		partialRepCost*float64(max(set.Partials, 0)) +
		float64(max(set.DropSetReps, 0)) +
		float64(max(set.RestPauseReps, 0))
	return reps
}
