package schema

// Fixed lookup tables for the volume and fatigue models. The variant sets are
// closed; new phases, tiers or roles require a code change here.

// VolumeRange is an inclusive [Min, Max] weekly set range.
type VolumeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Band thresholds and ranges.
const (
	MinAthleteScore       = 4
	MaxAthleteScore       = 12
	AdvancedScoreCutoff   = 9 // 75% of the maximum attainable score
	SessionSetCeiling     = 10
	RecoverableMultiplier = 1.25
	SmallMuscleMultiplier = 1.2
)

// Aggregation defaults.
const (
	DefaultSessionLimit = 6.0
	DefaultWeeklyMRV    = 18.0
)

// GetBandRange returns the base weekly set range of a capacity band.
func GetBandRange(band CapacityBand) VolumeRange {
	if band == AdvancedBand {
		return VolumeRange{Min: 14, Max: 22}
	}
	return VolumeRange{Min: 10, Max: 14}
}

// GetPhaseFactor returns the volume factor of a periodization phase.
// Unknown phases behave like accumulation.
func GetPhaseFactor(phase TrainingPhase) float64 {
	switch phase {
	case TransformationPhase:
		return 0.75
	case RealizationPhase:
		return 0.50
	case DeloadPhase:
		return 0.40
	default: // AccumulationPhase
		return 1.0
	}
}

// GetIntensityFactor returns the volume factor of an intensity tier.
// Unknown tiers behave like rpe_8_9.
func GetIntensityFactor(tier IntensityTier) float64 {
	switch tier {
	case FailureTier:
		return 0.6
	case RPE67Tier:
		return 1.2
	default: // RPE89Tier
		return 1.0
	}
}

// SmallMuscles recover faster and tolerate more weekly sets.
var SmallMuscles = map[string]struct{}{
	"Biceps":    {},
	"Triceps":   {},
	"Shoulders": {},
	"Calves":    {},
	"Abs":       {},
	"Forearms":  {},
}

// IsSmallMuscle reports whether the canonical muscle name gets the small-muscle multiplier.
func IsSmallMuscle(muscle string) bool {
	_, ok := SmallMuscles[muscle]
	return ok
}

// SynergistCredit is the programming credit a synergist receives per set.
const SynergistCredit = 0.5

// SynergyTable maps a primary muscle to the muscles it credits indirectly.
// It is one-hop and not symmetric.
var SynergyTable = map[string][]string{
	"Chest":      {"Triceps", "Shoulders"},
	"Back":       {"Biceps", "Forearms"},
	"Quads":      {"Glutes"},
	"Hamstrings": {"Glutes"},
	"Shoulders":  {"Triceps"},
}

// GetDisplayRoleWeight returns the ranking/display weight of a muscle role.
func GetDisplayRoleWeight(role MuscleRole) float64 {
	switch role {
	case PrimaryRole:
		return 1.0
	case SecondaryRole:
		return 0.5
	case StabilizerRole:
		return 0.4
	case NeutralizerRole:
		return 0.2
	default:
		return 0.5
	}
}

// GetFatigueRoleWeight returns how much of an exercise's muscular cost a role absorbs.
func GetFatigueRoleWeight(role MuscleRole) float64 {
	switch role {
	case PrimaryRole:
		return 1.0
	case SecondaryRole:
		return 0.6
	case StabilizerRole:
		return 0.3
	case NeutralizerRole:
		return 0.15
	default:
		return 0.6
	}
}

// GetHypertrophyRoleWeight returns the growth-stimulus credit of a role.
func GetHypertrophyRoleWeight(role MuscleRole) float64 {
	switch role {
	case PrimaryRole:
		return 1.0
	case SecondaryRole:
		return 0.5
	default:
		return 0
	}
}
