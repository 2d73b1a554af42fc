package core

import (
	"fmt"

	"github.com/rotnitxe/kpknfit/schema"
)

// BuildMetricsModel collects the lookup tables and curve samples of the engine
// for display.
func BuildMetricsModel() *schema.MetricsRenderModel {
	beginner := schema.GetBandRange(schema.BeginnerBand)
	advanced := schema.GetBandRange(schema.AdvancedBand)

	phases := make([]schema.MetricsFactor, 0, len(schema.AllPhases))
	for _, p := range schema.AllPhases {
		phases = append(phases, schema.MetricsFactor{Key: string(p), Value: schema.GetPhaseFactor(p)})
	}
	tiers := make([]schema.MetricsFactor, 0, len(schema.AllIntensityTiers))
	for _, t := range schema.AllIntensityTiers {
		tiers = append(tiers, schema.MetricsFactor{Key: string(t), Value: schema.GetIntensityFactor(t)})
	}

	roles := []schema.MuscleRole{schema.PrimaryRole, schema.SecondaryRole, schema.StabilizerRole, schema.NeutralizerRole}
	var fatigue, hypertrophy []schema.MetricsFactor
	for _, r := range roles {
		fatigue = append(fatigue, schema.MetricsFactor{Key: string(r), Value: schema.GetFatigueRoleWeight(r)})
		hypertrophy = append(hypertrophy, schema.MetricsFactor{Key: string(r), Value: schema.GetHypertrophyRoleWeight(r)})
	}

	var rest []schema.MetricsFactor
	for _, s := range []int{30, 45, 90, 120, 180, 300} {
		rest = append(rest, schema.MetricsFactor{Key: fmt.Sprintf("%ds", s), Value: RestFactor(s)})
	}
	var accumulation []schema.MetricsFactor
	for _, n := range []int{0, 2, 4, 8, 16} {
		accumulation = append(accumulation, schema.MetricsFactor{Key: fmt.Sprintf("%d sets", n), Value: AccumulationMultiplier(n)})
	}

	return &schema.MetricsRenderModel{
		Title:       "KPKN Training Load Model",
		Description: "Volume targets come from the athlete band; every set drains three capacity tanks",
		Tables: []schema.MetricsTable{
			{
				Name:    "capacity_bands",
				Purpose: "Weekly set range per athlete band",
				Factors: []schema.MetricsFactor{
					{Key: "beginner_min", Value: beginner.Min},
					{Key: "beginner_max", Value: beginner.Max},
					{Key: "advanced_min", Value: advanced.Min},
					{Key: "advanced_max", Value: advanced.Max},
				},
			},
			{Name: "phase_factors", Purpose: "Volume scaling per periodization phase", Factors: phases},
			{Name: "intensity_factors", Purpose: "Volume scaling per proximity-to-failure tier", Factors: tiers},
			{Name: "fatigue_role_weights", Purpose: "Share of muscular cost absorbed per muscle role", Factors: fatigue},
			{Name: "hypertrophy_role_weights", Purpose: "Growth credit per muscle role", Factors: hypertrophy},
			{
				Name:    "tank_baselines",
				Purpose: "Capacity of a 75 kg athlete at maintenance",
				Factors: []schema.MetricsFactor{
					{Key: string(schema.CNSChannel), Value: BaselineCNSTank},
					{Key: string(schema.MuscularChannel), Value: BaselineMuscularTank},
					{Key: string(schema.SpinalChannel), Value: BaselineSpinalTank},
				},
			},
			{Name: "rest_factors", Purpose: "Set cost multiplier by rest interval", Factors: rest},
			{Name: "accumulation", Purpose: "Local cost multiplier by prior sets of the muscle", Factors: accumulation},
			{
				Name:    "stress_levels",
				Purpose: "Upper bound of each session stress level",
				Factors: []schema.MetricsFactor{
					{Key: StressLow, Value: 40},
					{Key: StressOptimal, Value: 80},
					{Key: StressHigh, Value: 120},
				},
			},
			{
				Name:    "acwr_zones",
				Purpose: "Upper bound of each acute:chronic workload zone",
				Factors: []schema.MetricsFactor{
					{Key: ZoneUnder, Value: 0.8},
					{Key: ZoneSafe, Value: 1.3},
					{Key: ZoneRisk, Value: 1.5},
				},
			},
		},
		Formulas: map[string]string{
			"athlete_score": "technical + consistency + strength + (recovery + 2)",
			"mav":           "min(round(band_max * phase * intensity * small_muscle), 10 * frequency)",
			"mrv":           "round(mav * 1.25)",
			"set_drain":     "reps^0.65 * intensity * rest * cost * accumulation / tank * 100",
			"accumulation":  "1 + 0.6 * (1 - e^(-sets/8))",
			"acwr":          "mean(last 7 days) / mean(last 28 days)",
		},
	}
}
