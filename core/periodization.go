package core

import "github.com/rotnitxe/kpknfit/schema"

// Modulate scales a classification's base range by phase, intensity and muscle size.
// The result is unrounded; callers decide how to round.
func Modulate(c schema.Classification, phase schema.TrainingPhase, intensity schema.IntensityTier, muscle string) schema.VolumeRange {
	factor := schema.GetPhaseFactor(phase) * schema.GetIntensityFactor(intensity)
	if schema.IsSmallMuscle(muscle) {
		factor *= schema.SmallMuscleMultiplier
	}
	return schema.VolumeRange{
		Min: c.Range.Min * factor,
		Max: c.Range.Max * factor,
	}
}
