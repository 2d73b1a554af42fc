package core

import (
	"maps"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/rotnitxe/kpknfit/schema"
)

// AggregateWeek evaluates the sessions of one week in order. Each session sees
// the flat volume of the sessions before it as its prior weekly volume.
// Session stress is summed per training day into at least 7 daily loads; a
// session without a day lands on the day after the previous one. history holds
// the daily stress loads that preceded the week, oldest first, and the ACWR is
// reported once history plus the week hold 7 training days.
func AggregateWeek(sessions []schema.SessionInput, tanks schema.BatteryTanks, ctx schema.SessionContext, history []float64) schema.WeekSummary {
	ctx.VolumeLimits = schema.NormalizeVolumeLimits(ctx.VolumeLimits)
	running := make(map[string]float64, len(ctx.PriorWeeklyVolume))
	maps.Copy(running, ctx.PriorWeeklyVolume)

	week := schema.WeekSummary{
		Sessions:   make([]schema.SessionSummary, 0, len(sessions)),
		WeekAlerts: []schema.WeekAlert{},
	}
	var days []float64
	day := 0
	var cns, muscular, spinal stats.Float64Data

	for _, s := range sessions {
		sctx := ctx
		sctx.SessionID = s.ID
		sctx.PriorWeeklyVolume = maps.Clone(running)

		summary := AggregateSession(s.Exercises, tanks, sctx)
		for _, mv := range summary.MuscleRanking {
			running[mv.Muscle] = mv.WeeklyFlatVolume
		}
		week.Sessions = append(week.Sessions, summary)

		if s.Day > 0 {
			day = s.Day
		} else {
			day++
		}
		days = padDays(days, day)
		days[day-1] += summary.StressScore

		cns = append(cns, summary.Totals.CNSDrainPct)
		muscular = append(muscular, summary.Totals.MuscularDrainPct)
		spinal = append(spinal, summary.Totals.SpinalDrainPct)
	}

	week.WeeklyFlatVolume = running
	for _, m := range slices.Sorted(maps.Keys(running)) {
		if alert, ok := CheckWeeklyVolume(m, running[m], weeklyMRV(m, ctx)); ok {
			week.WeekAlerts = append(week.WeekAlerts, alert)
		}
	}

	week.MeanDrain = schema.SetDrainResult{
		CNSDrainPct:      mean(cns),
		MuscularDrainPct: mean(muscular),
		SpinalDrainPct:   mean(spinal),
	}
	week.StdDevDrain = schema.SetDrainResult{
		CNSDrainPct:      stddev(cns),
		MuscularDrainPct: stddev(muscular),
		SpinalDrainPct:   stddev(spinal),
	}

	week.DailyLoads = padDays(days, acuteWindowDays)
	if acwr := ComputeACWR(slices.Concat(history, week.DailyLoads)); acwr.Zone != ZoneInsufficient {
		week.ACWR = &acwr
	}
	return week
}

// padDays extends days with rest days until it holds at least n entries.
func padDays(days []float64, n int) []float64 {
	for len(days) < n {
		days = append(days, 0)
	}
	return days
}

func mean(data stats.Float64Data) float64 {
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}

func stddev(data stats.Float64Data) float64 {
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return 0
	}
	return sd
}
