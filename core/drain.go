package core

import (
	"math"

	"github.com/rotnitxe/kpknfit/schema"
)

// Curve parameters of the set fatigue calculator.
const (
	DefaultRestSeconds = 90

	repExponent = 0.65 // diminishing cost per additional rep

	accumulationCeiling  = 0.6 // max extra cost once a muscle is saturated
	accumulationScale    = 8.0 // sets at which ~63% of the ceiling applies
	cnsAccumulationShare = 0.5

	failedAttemptIntensity = 1.4

	heavyLoadPct         = 0.85
	moderateLoadPct      = 0.70
	heavyNeuralFactor    = 1.6
	moderateNeuralFactor = 1.2
	effortNeuralFactor   = 1.4

	referenceAxialLoadKg = 100.0
	maxAxialLoadBonus    = 2.0
	axialBreakdownSSC    = 1.2
	axialBreakdownFactor = 1.5
)

// DrainForSet computes the drain of one working set as a percentage of each tank.
// accumulatedSets is the number of working sets already performed for the
// exercise's primary muscle earlier in the session; restSeconds <= 0 uses the
// default rest. Results are not clamped.
func DrainForSet(set schema.ExerciseSet, exercise *schema.ExerciseFatigueProfile, tanks schema.BatteryTanks, accumulatedSets int, restSeconds int) schema.SetDrainResult {
	if exercise == nil {
		return schema.SetDrainResult{}
	}
	reps := EffectiveReps(set)
	if reps <= 0 {
		return schema.SetDrainResult{}
	}

	rpe := EffectiveRPE(set)
	base := math.Pow(reps, repExponent) * intensityFactor(set, rpe) * RestFactor(restSeconds)
	local := AccumulationMultiplier(accumulatedSets)

	muscular := base * math.Max(exercise.EFC, 0) * local
	cns := base * math.Max(exercise.CNC, 0) * neuralFactor(set, rpe) * (1 + (local-1)*cnsAccumulationShare)
	spinal := base * math.Max(exercise.SSC, 0) * axialFactor(set)
	if rpe >= 10 && exercise.SSC >= axialBreakdownSSC {
		spinal *= axialBreakdownFactor * math.Pow(rpe/10, 2)
	}

	return schema.SetDrainResult{
		CNSDrainPct:      pct(cns, tanks.CNS),
		MuscularDrainPct: pct(muscular, tanks.Muscular),
		SpinalDrainPct:   pct(spinal, tanks.Spinal),
	}
}

// SetStress is the session-stress score of one set: its metabolic cost without
// local accumulation or channel normalization.
func SetStress(set schema.ExerciseSet, exercise *schema.ExerciseFatigueProfile, restSeconds int) float64 {
	if exercise == nil {
		return 0
	}
	reps := EffectiveReps(set)
	if reps <= 0 {
		return 0
	}
	rpe := EffectiveRPE(set)
	return math.Pow(reps, repExponent) * intensityFactor(set, rpe) * RestFactor(restSeconds) * math.Max(exercise.EFC, 0)
}

// AccumulationMultiplier grows with the sets a muscle has already taken and
// saturates towards 1+accumulationCeiling. It never decreases.
func AccumulationMultiplier(accumulatedSets int) float64 {
	n := float64(max(accumulatedSets, 0))
	return 1 + accumulationCeiling*(1-math.Exp(-n/accumulationScale))
}

// RestFactor penalizes short rest and rewards long rest. It never increases
// with longer rest.
func RestFactor(restSeconds int) float64 {
	if restSeconds <= 0 {
		restSeconds = DefaultRestSeconds
	}
	switch {
	case restSeconds <= 30:
		return 1.4
	case restSeconds < 60:
		return 1.2
	case restSeconds >= 120:
		return math.Max(0.8, 1-float64(restSeconds-120)*0.0015)
	default:
		return 1.0
	}
}

func intensityFactor(set schema.ExerciseSet, rpe float64) float64 {
	f := rpe / 10
	if rpe > 10 {
		f = math.Pow(rpe/10, 1.5)
	}
	if set.PerformanceMode == schema.PerformanceFailed {
		f = math.Max(f, failedAttemptIntensity)
	}
	return f
}

// neuralFactor uses the relative load when both weight and 1RM are known,
// and falls back to effort otherwise.
func neuralFactor(set schema.ExerciseSet, rpe float64) float64 {
	if set.WeightKg > 0 && set.OneRepMaxKg > 0 {
		load := set.WeightKg / set.OneRepMaxKg
		switch {
		case load > heavyLoadPct:
			return heavyNeuralFactor
		case load > moderateLoadPct:
			return moderateNeuralFactor
		default:
			return 1.0
		}
	}
	if rpe >= 9 {
		return effortNeuralFactor
	}
	return 1.0
}

func axialFactor(set schema.ExerciseSet) float64 {
	if set.WeightKg <= 0 {
		return 1.0
	}
	return 1 + math.Min(set.WeightKg/referenceAxialLoadKg, maxAxialLoadBonus)
}

func pct(raw, tank float64) float64 {
	if tank <= 0 {
		tank = 1
	}
	return raw / tank * 100
}
