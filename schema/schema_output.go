package schema

// EnrichedExerciseDrain adds presentation data to an ExerciseDrain.
type EnrichedExerciseDrain struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ExerciseDrain
}

// EnrichedMuscleVolume adds presentation data to a MuscleVolume.
type EnrichedMuscleVolume struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	MuscleVolume
}

// GetPlainLabel returns a plain text label indicating how hard a drain
// percentage (0-100) hits its tank.
func GetPlainLabel(pct float64) string {
	switch {
	case pct >= 80:
		return "Critical"
	case pct >= 60:
		return "High"
	case pct >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

// GetVolumeLabel labels an effective volume relative to its limit.
func GetVolumeLabel(volume, limit float64) string {
	if limit <= 0 {
		return GetPlainLabel(0)
	}
	return GetPlainLabel(volume / limit * 80)
}

// EnrichExercises adds rank and label to a ranked list of exercise drains.
func EnrichExercises(exercises []ExerciseDrain) []EnrichedExerciseDrain {
	output := make([]EnrichedExerciseDrain, len(exercises))
	for i, e := range exercises {
		output[i] = EnrichedExerciseDrain{
			Rank:          i + 1,
			Label:         GetPlainLabel(e.Contribution),
			ExerciseDrain: e,
		}
	}
	return output
}

// EnrichMuscles adds rank and label to a ranked list of muscle volumes.
func EnrichMuscles(muscles []MuscleVolume) []EnrichedMuscleVolume {
	output := make([]EnrichedMuscleVolume, len(muscles))
	for i, m := range muscles {
		output[i] = EnrichedMuscleVolume{
			Rank:         i + 1,
			Label:        GetVolumeLabel(m.EffectiveVolume, m.SessionLimit),
			MuscleVolume: m,
		}
	}
	return output
}
