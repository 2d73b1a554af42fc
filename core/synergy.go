package core

import (
	"github.com/rotnitxe/kpknfit/core/algo"
	"github.com/rotnitxe/kpknfit/schema"
)

// FractionalCredit returns the programming credit of sets performed with the
// given primary muscle: 1.0 per set for the primary, 0.5 per set for each
// synergist listed in the synergy table. Synergists never credit back.
func FractionalCredit(primary string, sets float64) map[string]float64 {
	credit := map[string]float64{primary: sets}
	for _, syn := range schema.SynergyTable[primary] {
		credit[syn] += sets * schema.SynergistCredit
	}
	return credit
}

// PrimaryMuscle resolves the canonical primary muscle of an exercise profile.
func PrimaryMuscle(p *schema.ExerciseFatigueProfile) string {
	if p == nil {
		return schema.GeneralMuscle
	}
	if p.PrimaryMuscle != "" {
		return schema.NormalizeMuscle(p.PrimaryMuscle)
	}
	for _, im := range p.InvolvedMuscles {
		if im.Role == schema.PrimaryRole {
			return schema.NormalizeMuscle(im.Muscle)
		}
	}
	return schema.GeneralMuscle
}

// InvolvedMuscles returns the normalized muscles of an exercise with their roles.
// When the profile lists none, the synergy graph supplies them. A muscle listed
// more than once keeps only its highest-weighted role.
func InvolvedMuscles(p *schema.ExerciseFatigueProfile) []schema.InvolvedMuscle {
	primary := PrimaryMuscle(p)
	if p == nil || len(p.InvolvedMuscles) == 0 {
		out := []schema.InvolvedMuscle{{Muscle: primary, Role: schema.PrimaryRole, Activation: 1}}
		for _, syn := range schema.SynergyTable[primary] {
			out = append(out, schema.InvolvedMuscle{Muscle: syn, Role: schema.SecondaryRole, Activation: schema.SynergistCredit})
		}
		return out
	}

	index := make(map[string]int, len(p.InvolvedMuscles))
	out := make([]schema.InvolvedMuscle, 0, len(p.InvolvedMuscles))
	for _, im := range p.InvolvedMuscles {
		im.Muscle = schema.NormalizeMuscle(im.Muscle)
		if i, ok := index[im.Muscle]; ok {
			if schema.GetDisplayRoleWeight(im.Role) > schema.GetDisplayRoleWeight(out[i].Role) {
				out[i] = im
			}
			continue
		}
		index[im.Muscle] = len(out)
		out = append(out, im)
	}
	return out
}

// PlanWeek computes the planned weekly volume of a program week using the
// synergy graph, and how many sessions hit each muscle as the agonist.
func PlanWeek(program schema.ProgramInput) schema.PlannedWeek {
	week := schema.PlannedWeek{
		PlannedVolume: make(map[string]float64),
		Frequency:     make(map[string]int),
	}
	for _, session := range program.Sessions {
		hit := make(map[string]struct{})
		for _, ex := range session.Exercises {
			if ex.TargetMuscle == "" || ex.Sets <= 0 {
				continue
			}
			target := schema.NormalizeMuscle(ex.TargetMuscle)
			for m, c := range FractionalCredit(target, float64(ex.Sets)) {
				week.PlannedVolume[m] += c
			}
			hit[target] = struct{}{}
		}
		for m := range hit {
			week.Frequency[m]++
		}
	}
	return week
}

// ComparePlan checks each planned muscle against its recommendation. Rows are
// ordered by planned volume.
func ComparePlan(week schema.PlannedWeek, profile *schema.AthleteProfile, phase schema.TrainingPhase, intensity schema.IntensityTier) []schema.PlanComparison {
	out := make([]schema.PlanComparison, 0, len(week.PlannedVolume))
	for muscle, planned := range week.PlannedVolume {
		freq := week.Frequency[muscle]
		rec := Recommend(muscle, profile, phase, intensity, max(freq, 1))
		status := schema.WithinPlan
		switch {
		case planned < float64(rec.MinEffectiveVolume):
			status = schema.UnderPlan
		case planned > float64(rec.MaxAdaptiveVolume):
			status = schema.OverPlan
		}
		out = append(out, schema.PlanComparison{
			Muscle:         muscle,
			PlannedVolume:  planned,
			Frequency:      freq,
			Recommendation: rec,
			Status:         status,
		})
	}
	return algo.RankPlan(out)
}
