package schema

import "time"

// AdjustedRecommendation is a recommendation after the feedback adjustment.
type AdjustedRecommendation struct {
	Base       VolumeRecommendation `json:"base"`
	Adjusted   VolumeRecommendation `json:"adjusted"`
	Adjustment FeedbackAdjustment   `json:"adjustment"`
}

// RecommendationReport is the output of the recommend command.
type RecommendationReport struct {
	AthleteID       string                   `json:"athlete_id"`
	Phase           TrainingPhase            `json:"phase"`
	Intensity       IntensityTier            `json:"intensity"`
	Frequency       int                      `json:"frequency"`
	Classification  *Classification          `json:"classification,omitempty"`
	Lifts           *LiftsRecommendation     `json:"lifts,omitempty"`
	Recommendations []AdjustedRecommendation `json:"recommendations"`
}

// SessionVolumeIssue flags one muscle of one planned session whose set count
// reaches the warning threshold.
type SessionVolumeIssue struct {
	Session string             `json:"session"`
	Muscle  string             `json:"muscle"`
	Check   SessionVolumeCheck `json:"check"`
}

// PlanReport is the output of the plan command.
type PlanReport struct {
	Program     string               `json:"program"`
	AthleteID   string               `json:"athlete_id"`
	Phase       TrainingPhase        `json:"phase"`
	Intensity   IntensityTier        `json:"intensity"`
	Comparisons []PlanComparison     `json:"comparisons"`
	Issues      []SessionVolumeIssue `json:"issues"`
}

// SessionReport is the output of the session command.
type SessionReport struct {
	EvaluationID string         `json:"evaluation_id"`
	EvaluatedAt  time.Time      `json:"evaluated_at"`
	AthleteID    string         `json:"athlete_id"`
	Tanks        BatteryTanks   `json:"tanks"`
	Unresolved   []string       `json:"unresolved,omitempty"`
	Summary      SessionSummary `json:"summary"`
}

// WeekReport is the output of the week command.
type WeekReport struct {
	EvaluationID string       `json:"evaluation_id"`
	EvaluatedAt  time.Time    `json:"evaluated_at"`
	AthleteID    string       `json:"athlete_id"`
	Tanks        BatteryTanks `json:"tanks"`
	Unresolved   []string     `json:"unresolved,omitempty"`
	Week         WeekSummary  `json:"week"`
}

// TanksReport is the output of the tanks command.
type TanksReport struct {
	AthleteID string       `json:"athlete_id"`
	Settings  Settings     `json:"settings"`
	Baseline  BatteryTanks `json:"baseline"`
	Tanks     BatteryTanks `json:"tanks"`
}
