package schema

// InvolvedMuscle is one muscle an exercise loads and the role it plays.
type InvolvedMuscle struct {
	Muscle     string     `json:"muscle" yaml:"muscle"`
	Role       MuscleRole `json:"role" yaml:"role"`
	Activation float64    `json:"activation,omitempty" yaml:"activation,omitempty"`
}

// ExerciseFatigueProfile holds the static costs of an exercise.
// EFC is the metabolic cost, CNC the neural cost and SSC the structural (axial) cost.
type ExerciseFatigueProfile struct {
	ID              string           `json:"id" yaml:"id"`
	Name            string           `json:"name" yaml:"name"`
	EFC             float64          `json:"efc" yaml:"efc"`
	CNC             float64          `json:"cnc" yaml:"cnc"`
	SSC             float64          `json:"ssc" yaml:"ssc"`
	PrimaryMuscle   string           `json:"primary_muscle" yaml:"primary_muscle"`
	Equipment       string           `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	InvolvedMuscles []InvolvedMuscle `json:"involved_muscles,omitempty" yaml:"involved_muscles,omitempty"`
}

// Performance modes recorded for a set.
const (
	PerformanceTarget = "target"
	PerformanceFailed = "failed"
)

// ExerciseSet is a single planned or performed set. Every numeric field is
// optional; zero means "not specified".
type ExerciseSet struct {
	Reps            int     `json:"reps" yaml:"reps"`
	WeightKg        float64 `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	OneRepMaxKg     float64 `json:"one_rep_max_kg,omitempty" yaml:"one_rep_max_kg,omitempty"`
	TargetRPE       float64 `json:"target_rpe,omitempty" yaml:"target_rpe,omitempty"`
	CompletedRPE    float64 `json:"completed_rpe,omitempty" yaml:"completed_rpe,omitempty"`
	TargetRIR       *int    `json:"target_rir,omitempty" yaml:"target_rir,omitempty"`
	CompletedRIR    *int    `json:"completed_rir,omitempty" yaml:"completed_rir,omitempty"`
	ToFailure       bool    `json:"to_failure,omitempty" yaml:"to_failure,omitempty"`
	AMRAP           bool    `json:"amrap,omitempty" yaml:"amrap,omitempty"`
	Warmup          bool    `json:"warmup,omitempty" yaml:"warmup,omitempty"`
	Partials        int     `json:"partials,omitempty" yaml:"partials,omitempty"`
	DropSets        int     `json:"drop_sets,omitempty" yaml:"drop_sets,omitempty"`
	DropSetReps     int     `json:"drop_set_reps,omitempty" yaml:"drop_set_reps,omitempty"`
	RestPauses      int     `json:"rest_pauses,omitempty" yaml:"rest_pauses,omitempty"`
	RestPauseReps   int     `json:"rest_pause_reps,omitempty" yaml:"rest_pause_reps,omitempty"`
	PerformanceMode string  `json:"performance_mode,omitempty" yaml:"performance_mode,omitempty"`
}

// SessionExercise is an exercise slot in a session. Profile is resolved by the
// caller from the catalog; exercises without a profile are skipped.
type SessionExercise struct {
	ID          string                  `json:"id" yaml:"id"`
	Name        string                  `json:"name" yaml:"name"`
	Equipment   string                  `json:"equipment,omitempty" yaml:"equipment,omitempty"`
	RestSeconds int                     `json:"rest_seconds,omitempty" yaml:"rest_seconds,omitempty"`
	Technique   string                  `json:"technique,omitempty" yaml:"technique,omitempty"`
	Sets        []ExerciseSet           `json:"sets" yaml:"sets"`
	Profile     *ExerciseFatigueProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// SessionInput is a whole training session as read from a session file.
// Day is the 1-based training day within the evaluated week; zero means the
// day after the previous session.
type SessionInput struct {
	ID        string            `json:"id" yaml:"id"`
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	Day       int               `json:"day,omitempty" yaml:"day,omitempty"`
	Exercises []SessionExercise `json:"exercises" yaml:"exercises"`
}

// PlannedExercise is an exercise slot in a program template.
type PlannedExercise struct {
	Name         string `json:"name" yaml:"name"`
	TargetMuscle string `json:"target_muscle" yaml:"target_muscle"`
	Sets         int    `json:"sets" yaml:"sets"`
}

// PlannedSession is a session in a program template.
type PlannedSession struct {
	Name      string            `json:"name" yaml:"name"`
	Exercises []PlannedExercise `json:"exercises" yaml:"exercises"`
}

// ProgramInput is a representative training week of a program.
type ProgramInput struct {
	Name     string           `json:"name" yaml:"name"`
	Sessions []PlannedSession `json:"sessions" yaml:"sessions"`
}

// CatalogFile is the on-disk form of an exercise catalog.
type CatalogFile struct {
	Exercises []ExerciseFatigueProfile `json:"exercises" yaml:"exercises"`
}
