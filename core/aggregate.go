package core

import (
	"fmt"
	"math"

	"github.com/rotnitxe/kpknfit/core/algo"
	"github.com/rotnitxe/kpknfit/schema"
)

// Fail-ratio thresholds that pick the wording of a session alert.
const (
	junkVolumeFailRatio = 0.5
	plateauFailRatio    = 0.2
)

// muscleAccumulator tracks one muscle while a session is folded.
type muscleAccumulator struct {
	volume   schema.MuscleVolume
	crossed  bool
	culprit  int
	exercise *schema.SessionExercise
}

// AggregateSession folds the exercises of one session into drain totals,
// per-muscle effective volume, alerts and rankings. Accumulated set counts are
// recomputed from scratch on every call. Exercises without a profile are
// skipped and warm-up sets never count. Muscles are ranked by their share of
// the session's muscular fatigue.
func AggregateSession(exercises []schema.SessionExercise, tanks schema.BatteryTanks, ctx schema.SessionContext) schema.SessionSummary {
	ctx.VolumeLimits = schema.NormalizeVolumeLimits(ctx.VolumeLimits)
	accumulated := make(map[string]int)
	muscles := make(map[string]*muscleAccumulator)
	var order []string

	var raw schema.SetDrainResult
	var stress float64
	drains := make([]schema.ExerciseDrain, 0, len(exercises))
	snapshots := make([]schema.SetSnapshot, 0)

	for idx := range exercises {
		ex := &exercises[idx]
		if ex.Profile == nil {
			continue
		}
		primary := PrimaryMuscle(ex.Profile)
		rest := restFor(ex, ctx)

		entry := schema.ExerciseDrain{
			Index:         idx,
			ExerciseID:    ex.ID,
			Name:          exerciseName(ex),
			PrimaryMuscle: primary,
		}
		var effort float64
		var failures, effective int
		for si, set := range ex.Sets {
			if set.Warmup {
				continue
			}
			n := accumulated[primary]
			d := DrainForSet(set, ex.Profile, tanks, n, rest)
			accumulated[primary] = n + 1

			entry.WorkingSets++
			entry.Drain = entry.Drain.Add(d)
			raw = raw.Add(d)
			stress += SetStress(set, ex.Profile, rest)
			effort += EffortMultiplier(set)
			if IsFailureSet(set) {
				failures++
			}
			if IsSetEffective(set) {
				effective++
			}
			snapshots = append(snapshots, schema.SetSnapshot{
				ExerciseIndex:   idx,
				SetIndex:        si,
				ExerciseID:      ex.ID,
				Muscle:          primary,
				AccumulatedSets: n,
				RestSeconds:     rest,
				EffectiveRPE:    EffectiveRPE(set),
				Drain:           d,
				Running:         clampDrain(raw),
			})
		}

		for _, im := range InvolvedMuscles(ex.Profile) {
			acc, ok := muscles[im.Muscle]
			if !ok {
				acc = &muscleAccumulator{volume: schema.MuscleVolume{
					Muscle:       im.Muscle,
					SessionLimit: sessionLimit(im.Muscle, ctx),
					WeeklyMRV:    weeklyMRV(im.Muscle, ctx),
				}}
				muscles[im.Muscle] = acc
				order = append(order, im.Muscle)
			}
			before := acc.volume.EffectiveVolume
			acc.volume.EffectiveVolume += schema.GetDisplayRoleWeight(im.Role) * effort
			acc.volume.FatigueShare += entry.Drain.MuscularDrainPct * fatigueWeight(im)
			acc.volume.StimulusSets += schema.GetHypertrophyRoleWeight(im.Role) * float64(effective)
			acc.volume.WorkingSets += entry.WorkingSets
			acc.volume.FailureSets += failures
			if im.Role == schema.PrimaryRole {
				acc.volume.FlatSets += float64(entry.WorkingSets)
			}
			if !acc.crossed && before <= acc.volume.SessionLimit && acc.volume.EffectiveVolume > acc.volume.SessionLimit {
				acc.crossed = true
				acc.culprit = idx
				acc.exercise = ex
			}
		}
		drains = append(drains, entry)
	}

	summary := schema.SessionSummary{
		SessionID:       ctx.SessionID,
		PerMuscleVolume: make(map[string]float64, len(order)),
		Totals:          clampDrain(raw),
		StressScore:     stress,
		StressLevel:     ClassifyStress(stress),
		Alerts:          []schema.VolumeAlert{},
		WeekAlerts:      []schema.WeekAlert{},
		Sets:            snapshots,
	}

	culprits := make(map[int][]string)
	volumes := make([]schema.MuscleVolume, 0, len(order))
	for _, m := range order {
		acc := muscles[m]
		acc.volume.WeeklyFlatVolume = ctx.PriorWeeklyVolume[m] + acc.volume.FlatSets
		summary.PerMuscleVolume[m] = acc.volume.EffectiveVolume
		volumes = append(volumes, acc.volume)

		if acc.crossed {
			summary.Alerts = append(summary.Alerts, newVolumeAlert(ctx.SessionID, acc))
			culprits[acc.culprit] = append(culprits[acc.culprit], m)
		}
		if alert, ok := CheckWeeklyVolume(m, acc.volume.WeeklyFlatVolume, acc.volume.WeeklyMRV); ok {
			summary.WeekAlerts = append(summary.WeekAlerts, alert)
		}
	}

	total := raw.Total()
	for i := range drains {
		if total > 0 {
			drains[i].Contribution = drains[i].Drain.Total() / total * 100
		}
		if ms, ok := culprits[drains[i].Index]; ok {
			drains[i].Culprit = true
			drains[i].CulpritFor = ms
		}
	}
	summary.Exercises = drains
	summary.ExerciseRanking = algo.RankExercises(drains)
	summary.MuscleRanking = algo.RankMuscles(volumes)
	return summary
}

// CheckWeeklyVolume reports a week alert when the flat weekly volume of a
// muscle exceeds its MRV.
func CheckWeeklyVolume(muscle string, flatVolume, mrv float64) (schema.WeekAlert, bool) {
	if mrv <= 0 || flatVolume <= mrv {
		return schema.WeekAlert{}, false
	}
	return schema.WeekAlert{
		Muscle:     muscle,
		FlatVolume: flatVolume,
		MRV:        mrv,
		Message:    fmt.Sprintf("%s weekly volume %.1f exceeds MRV %.1f", muscle, flatVolume, mrv),
	}, true
}

// ClassifyFailRatio picks the alert kind from the share of sets taken to failure.
func ClassifyFailRatio(failRatio float64) schema.AlertKind {
	switch {
	case failRatio >= junkVolumeFailRatio:
		return schema.JunkVolumeAlert
	case failRatio <= plateauFailRatio:
		return schema.PlateauAlert
	default:
		return schema.OverloadAlert
	}
}

func newVolumeAlert(sessionID string, acc *muscleAccumulator) schema.VolumeAlert {
	v := acc.volume
	var ratio float64
	if v.WorkingSets > 0 {
		ratio = float64(v.FailureSets) / float64(v.WorkingSets)
	}
	kind := ClassifyFailRatio(ratio)

	var msg string
	switch kind {
	case schema.JunkVolumeAlert:
		msg = fmt.Sprintf("%s: junk volume, %.1f effective sets with %.0f%% to failure (limit %.1f)", v.Muscle, v.EffectiveVolume, ratio*100, v.SessionLimit)
	case schema.PlateauAlert:
		msg = fmt.Sprintf("%s: %.1f effective sets exceeded the optimum despite easy effort (limit %.1f)", v.Muscle, v.EffectiveVolume, v.SessionLimit)
	default:
		msg = fmt.Sprintf("%s: %.1f effective sets exceed the session limit of %.1f", v.Muscle, v.EffectiveVolume, v.SessionLimit)
	}

	return schema.VolumeAlert{
		SessionID:           sessionID,
		Muscle:              v.Muscle,
		Kind:                kind,
		Volume:              v.EffectiveVolume,
		Threshold:           v.SessionLimit,
		FailRatio:           ratio,
		Message:             msg,
		CulpritIndex:        acc.culprit,
		CulpritExerciseID:   acc.exercise.ID,
		CulpritExerciseName: exerciseName(acc.exercise),
	}
}

// fatigueWeight is the part of an exercise's muscular drain a muscle carries.
// An explicit activation overrides the role table.
func fatigueWeight(im schema.InvolvedMuscle) float64 {
	if im.Activation > 0 {
		return min(im.Activation, 1)
	}
	return schema.GetFatigueRoleWeight(im.Role)
}

func sessionLimit(muscle string, ctx schema.SessionContext) float64 {
	if l, ok := ctx.VolumeLimits[muscle]; ok && l.MaxSession > 0 {
		return l.MaxSession
	}
	if ctx.DefaultSessionMax > 0 {
		return ctx.DefaultSessionMax
	}
	return schema.DefaultSessionLimit
}

func weeklyMRV(muscle string, ctx schema.SessionContext) float64 {
	if l, ok := ctx.VolumeLimits[muscle]; ok && l.Max > 0 {
		return l.Max
	}
	if ctx.DefaultWeeklyMRV > 0 {
		return ctx.DefaultWeeklyMRV
	}
	return schema.DefaultWeeklyMRV
}

func restFor(ex *schema.SessionExercise, ctx schema.SessionContext) int {
	if ex.RestSeconds > 0 {
		return ex.RestSeconds
	}
	if ctx.DefaultRestSeconds > 0 {
		return ctx.DefaultRestSeconds
	}
	return DefaultRestSeconds
}

func exerciseName(ex *schema.SessionExercise) string {
	if ex.Name != "" {
		return ex.Name
	}
	if ex.Profile != nil {
		return ex.Profile.Name
	}
	return ex.ID
}

func clampDrain(d schema.SetDrainResult) schema.SetDrainResult {
	return schema.SetDrainResult{
		CNSDrainPct:      clampPct(d.CNSDrainPct),
		MuscularDrainPct: clampPct(d.MuscularDrainPct),
		SpinalDrainPct:   clampPct(d.SpinalDrainPct),
	}
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
