package schema

// Custom string types for type safety.
type (
	// TrainingPhase represents the current periodization phase.
	TrainingPhase string

	// IntensityTier represents the proximity-to-failure tier used for programming.
	IntensityTier string

	// CapacityBand represents the athlete classification band.
	CapacityBand string

	// MuscleRole represents the role a muscle plays in an exercise.
	MuscleRole string

	// Channel represents one of the three fatigue channels.
	Channel string

	// AlertKind represents the flavour of a session volume alert.
	AlertKind string

	// CalorieGoal represents the athlete's nutrition objective.
	CalorieGoal string

	// StressLevel represents the athlete's non-training stress load.
	StressLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for stores.
	DatabaseBackend string
)

// All training phases supported.
const (
	AccumulationPhase   TrainingPhase = "accumulation" // default
	TransformationPhase TrainingPhase = "transformation"
	RealizationPhase    TrainingPhase = "realization"
	DeloadPhase         TrainingPhase = "deload"
)

// All intensity tiers supported.
const (
	FailureTier IntensityTier = "failure"
	RPE89Tier   IntensityTier = "rpe_8_9" // default
	RPE67Tier   IntensityTier = "rpe_6_7"
)

// Capacity bands.
const (
	BeginnerBand CapacityBand = "beginner"
	AdvancedBand CapacityBand = "advanced"
)

// Muscle roles.
const (
	PrimaryRole     MuscleRole = "primary"
	SecondaryRole   MuscleRole = "secondary"
	StabilizerRole  MuscleRole = "stabilizer"
	NeutralizerRole MuscleRole = "neutralizer"
)

// Fatigue channels.
const (
	CNSChannel      Channel = "cns"
	MuscularChannel Channel = "muscular"
	SpinalChannel   Channel = "spinal"
)

// Session alert kinds.
const (
	JunkVolumeAlert AlertKind = "junk_volume"
	PlateauAlert    AlertKind = "plateau"
	OverloadAlert   AlertKind = "overload"
)

// Calorie goals.
const (
	DeficitGoal     CalorieGoal = "deficit"
	MaintenanceGoal CalorieGoal = "maintenance" // default
	SurplusGoal     CalorieGoal = "surplus"
)

// Life stress levels.
const (
	LowStress      StressLevel = "low"
	ModerateStress StressLevel = "moderate" // default
	HighStress     StressLevel = "high"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	XLSXOut    OutputMode = "xlsx"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	RedisBackend      DatabaseBackend = "redis"  // memo only
	MemoryBackend     DatabaseBackend = "memory" // memo only
	NoneBackend       DatabaseBackend = "none"
)

// AllPhases returns the phases in periodization order.
var AllPhases = []TrainingPhase{AccumulationPhase, TransformationPhase, RealizationPhase, DeloadPhase}

// AllIntensityTiers returns the intensity tiers from hardest to easiest.
var AllIntensityTiers = []IntensityTier{FailureTier, RPE89Tier, RPE67Tier}

// AllChannels returns the fatigue channels in display order.
var AllChannels = []Channel{CNSChannel, MuscularChannel, SpinalChannel}

// ValidPhases lists all valid training phases.
var ValidPhases = map[TrainingPhase]struct{}{
	AccumulationPhase:   {},
	TransformationPhase: {},
	RealizationPhase:    {},
	DeloadPhase:         {},
}

// ValidIntensityTiers lists all valid intensity tiers.
var ValidIntensityTiers = map[IntensityTier]struct{}{
	FailureTier: {},
	RPE89Tier:   {},
	RPE67Tier:   {},
}

// ValidCalorieGoals lists all valid calorie goals.
var ValidCalorieGoals = map[CalorieGoal]struct{}{
	DeficitGoal:     {},
	MaintenanceGoal: {},
	SurplusGoal:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	XLSXOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists the backends usable by the SQL stores.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidMemoBackends lists the backends usable by the memo cache.
var ValidMemoBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	RedisBackend:      {},
	MemoryBackend:     {},
	NoneBackend:       {},
}
