package schema

// SessionContext carries the per-evaluation inputs of the aggregation layer.
// Zero values fall back to the package defaults.
type SessionContext struct {
	SessionID          string                 `json:"session_id,omitempty"`
	VolumeLimits       map[string]VolumeLimit `json:"volume_limits,omitempty"`
	DefaultSessionMax  float64                `json:"default_session_max,omitempty"`
	DefaultWeeklyMRV   float64                `json:"default_weekly_mrv,omitempty"`
	DefaultRestSeconds int                    `json:"default_rest_seconds,omitempty"`
	PriorWeeklyVolume  map[string]float64     `json:"prior_weekly_volume,omitempty"`
}

// MuscleVolume is the per-muscle result of a session aggregation.
type MuscleVolume struct {
	Muscle           string  `json:"muscle"`
	EffectiveVolume  float64 `json:"effective_volume"`
	FatigueShare     float64 `json:"fatigue_share"`
	StimulusSets     float64 `json:"stimulus_sets"`
	FlatSets         float64 `json:"flat_sets"`
	WeeklyFlatVolume float64 `json:"weekly_flat_volume"`
	SessionLimit     float64 `json:"session_limit"`
	WeeklyMRV        float64 `json:"weekly_mrv"`
	FailureSets      int     `json:"failure_sets"`
	WorkingSets      int     `json:"working_sets"`
}

// VolumeAlert is raised when a muscle's effective session volume crosses its limit.
type VolumeAlert struct {
	SessionID           string    `json:"session_id,omitempty"`
	Muscle              string    `json:"muscle"`
	Kind                AlertKind `json:"kind"`
	Volume              float64   `json:"volume"`
	Threshold           float64   `json:"threshold"`
	FailRatio           float64   `json:"fail_ratio"`
	Message             string    `json:"message"`
	CulpritIndex        int       `json:"culprit_index"`
	CulpritExerciseID   string    `json:"culprit_exercise_id"`
	CulpritExerciseName string    `json:"culprit_exercise_name"`
}

// WeekAlert is raised when a muscle's flat weekly volume exceeds its MRV.
type WeekAlert struct {
	Muscle     string  `json:"muscle"`
	FlatVolume float64 `json:"flat_volume"`
	MRV        float64 `json:"mrv"`
	Message    string  `json:"message"`
}

// ExerciseDrain is the aggregated fatigue contribution of one exercise.
type ExerciseDrain struct {
	Index         int            `json:"index"`
	ExerciseID    string         `json:"exercise_id"`
	Name          string         `json:"name"`
	PrimaryMuscle string         `json:"primary_muscle"`
	WorkingSets   int            `json:"working_sets"`
	Drain         SetDrainResult `json:"drain"`
	Contribution  float64        `json:"contribution"`
	Culprit       bool           `json:"culprit"`
	CulpritFor    []string       `json:"culprit_for,omitempty"`
}

// SetSnapshot is the per-set record of a session evaluation.
type SetSnapshot struct {
	ExerciseIndex   int            `json:"exercise_index"`
	SetIndex        int            `json:"set_index"`
	ExerciseID      string         `json:"exercise_id"`
	Muscle          string         `json:"muscle"`
	AccumulatedSets int            `json:"accumulated_sets"`
	RestSeconds     int            `json:"rest_seconds"`
	EffectiveRPE    float64        `json:"effective_rpe"`
	Drain           SetDrainResult `json:"drain"`
	Running         SetDrainResult `json:"running"`
}

// SessionSummary is the full result of aggregating one session.
type SessionSummary struct {
	SessionID       string             `json:"session_id,omitempty"`
	PerMuscleVolume map[string]float64 `json:"per_muscle_volume"`
	Totals          SetDrainResult     `json:"totals"`
	StressScore     float64            `json:"stress_score"`
	StressLevel     string             `json:"stress_level"`
	Alerts          []VolumeAlert      `json:"alerts"`
	WeekAlerts      []WeekAlert        `json:"week_alerts"`
	Exercises       []ExerciseDrain    `json:"exercises"`
	ExerciseRanking []ExerciseDrain    `json:"exercise_ranking"`
	MuscleRanking   []MuscleVolume     `json:"muscle_ranking"`
	Sets            []SetSnapshot      `json:"sets"`
}

// ACWRResult is the acute:chronic workload ratio of a daily load history.
type ACWRResult struct {
	Acute   float64 `json:"acute"`
	Chronic float64 `json:"chronic"`
	Ratio   float64 `json:"ratio"`
	Zone    string  `json:"zone"`
}

// WeekSummary aggregates several sessions of one training week.
type WeekSummary struct {
	Sessions         []SessionSummary   `json:"sessions"`
	WeeklyFlatVolume map[string]float64 `json:"weekly_flat_volume"`
	WeekAlerts       []WeekAlert        `json:"week_alerts"`
	MeanDrain        SetDrainResult     `json:"mean_drain"`
	StdDevDrain      SetDrainResult     `json:"stddev_drain"`
	DailyLoads       []float64          `json:"daily_loads"`
	ACWR             *ACWRResult        `json:"acwr,omitempty"`
}

// PlannedWeek is the synergy-credited planned volume of a program week.
type PlannedWeek struct {
	PlannedVolume map[string]float64 `json:"planned_volume"`
	Frequency     map[string]int     `json:"frequency"`
}

// Plan comparison statuses.
const (
	UnderPlan  = "under"
	WithinPlan = "within"
	OverPlan   = "over"
)

// PlanComparison compares the planned volume of one muscle with its recommendation.
type PlanComparison struct {
	Muscle         string               `json:"muscle"`
	PlannedVolume  float64              `json:"planned_volume"`
	Frequency      int                  `json:"frequency"`
	Recommendation VolumeRecommendation `json:"recommendation"`
	Status         string               `json:"status"`
}
