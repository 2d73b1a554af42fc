// Package algo holds the ordering rules shared by the engine and its outputs.
package algo

import (
	"sort"

	"github.com/rotnitxe/kpknfit/schema"
)

// RankExercises returns a copy of exercises sorted by drain contribution in
// descending order. Ties keep their session order.
func RankExercises(exercises []schema.ExerciseDrain) []schema.ExerciseDrain {
	out := append([]schema.ExerciseDrain(nil), exercises...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Contribution > out[j].Contribution
	})
	return out
}

// RankMuscles returns a copy of muscles sorted by fatigue share in
// descending order, then by effective volume. Ties keep their input order.
func RankMuscles(muscles []schema.MuscleVolume) []schema.MuscleVolume {
	out := append([]schema.MuscleVolume(nil), muscles...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FatigueShare != out[j].FatigueShare {
			return out[i].FatigueShare > out[j].FatigueShare
		}
		return out[i].EffectiveVolume > out[j].EffectiveVolume
	})
	return out
}

// RankPlan sorts plan comparisons by planned volume, then by muscle name.
func RankPlan(rows []schema.PlanComparison) []schema.PlanComparison {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PlannedVolume != rows[j].PlannedVolume {
			return rows[i].PlannedVolume > rows[j].PlannedVolume
		}
		return rows[i].Muscle < rows[j].Muscle
	})
	return rows
}

// Top truncates a ranked slice to at most limit entries. A limit <= 0 keeps everything.
func Top[T any](ranked []T, limit int) []T {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
