package core

import (
	"math"

	"github.com/rotnitxe/kpknfit/schema"
)

// Baseline tank sizes for a 75 kg athlete at maintenance with moderate life stress.
const (
	BaselineCNSTank      = 280.0
	BaselineMuscularTank = 350.0
	BaselineSpinalTank   = 250.0

	referenceBodyweightKg = 75.0
	minBodyweightScale    = 0.8
	maxBodyweightScale    = 1.25
	calibrationFloor      = 0.5
)

// ComputeTanks derives the per-channel capacity ceilings from athlete settings.
// The result depends only on its input; calling it twice yields equal tanks.
func ComputeTanks(settings schema.Settings) schema.BatteryTanks {
	bw := bodyweightScale(settings.BodyweightKg)

	cns := BaselineCNSTank
	muscular := BaselineMuscularTank * bw
	spinal := BaselineSpinalTank * bw

	switch settings.CalorieGoal {
	case schema.DeficitGoal:
		muscular *= 0.9
		cns *= 0.95
	case schema.SurplusGoal:
		muscular *= 1.05
	}

	switch settings.LifeStress {
	case schema.HighStress:
		cns *= 0.9
	case schema.LowStress:
		cns *= 1.05
	}

	if c := settings.Calibration; c != nil {
		cns = calibrate(cns, c.CNSDelta, BaselineCNSTank)
		muscular = calibrate(muscular, c.MuscularDelta, BaselineMuscularTank)
		spinal = calibrate(spinal, c.SpinalDelta, BaselineSpinalTank)
	}

	return schema.BatteryTanks{CNS: cns, Muscular: muscular, Spinal: spinal}
}

// bodyweightScale grows structural capacity with the square root of bodyweight.
func bodyweightScale(kg float64) float64 {
	if kg <= 0 {
		return 1.0
	}
	return math.Min(maxBodyweightScale, math.Max(minBodyweightScale, math.Sqrt(kg/referenceBodyweightKg)))
}

func calibrate(tank, deltaPct, baseline float64) float64 {
	return math.Max(tank*(1+deltaPct/100), baseline*calibrationFloor)
}
