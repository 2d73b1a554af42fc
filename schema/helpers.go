package schema

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// GeneralMuscle is the bucket for muscle names that cannot be normalized.
const GeneralMuscle = "General"

// muscleKeywords maps canonical muscle names to the lowercase keywords that
// identify them. Order matters: more specific groups are checked first.
var muscleKeywords = []struct {
	canonical string
	keywords  []string
}{
	{"Hamstrings", []string{"hamstring", "isquio", "femoral", "biceps femoris", "bíceps femoral"}},
	{"Lower Back", []string{"lower back", "erector", "lumbar", "espalda baja"}},
	{"Traps", []string{"trap", "rhomboid", "romboides", "upper back", "espalda alta"}},
	{"Forearms", []string{"forearm", "antebrazo", "grip", "agarre"}},
	{"Triceps", []string{"tricep", "tríceps"}},
	{"Biceps", []string{"bicep", "bíceps", "brachialis", "braquial"}},
	{"Shoulders", []string{"shoulder", "delt", "hombro"}},
	{"Chest", []string{"chest", "pec", "pecho"}},
	{"Back", []string{"back", "lat", "dorsal", "espalda", "redondo"}},
	{"Quads", []string{"quad", "cuádriceps", "cuadriceps", "vastus"}},
	{"Glutes", []string{"glute", "glúteo", "gluteo"}},
	{"Calves", []string{"calf", "calves", "gastrocnemius", "soleus", "gemelo", "pantorrilla"}},
	{"Abs", []string{"abs", "abdominal", "core", "oblique", "oblicuo"}},
}

// canonicalMuscles is the set of names NormalizeMuscle can return, besides GeneralMuscle.
var canonicalMuscles = func() map[string]struct{} {
	m := make(map[string]struct{}, len(muscleKeywords))
	for _, mk := range muscleKeywords {
		m[mk.canonical] = struct{}{}
	}
	return m
}()

// NormalizeMuscle maps a free-form muscle description (English or Spanish) to
// one of the canonical muscle names. Unknown names map to GeneralMuscle.
func NormalizeMuscle(name string) string {
	trimmed := strings.TrimSpace(name)
	if _, ok := canonicalMuscles[trimmed]; ok {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if lower == "" {
		return GeneralMuscle
	}
	for _, mk := range muscleKeywords {
		for _, kw := range mk.keywords {
			if strings.Contains(lower, kw) {
				return mk.canonical
			}
		}
	}
	return GeneralMuscle
}

// NormalizeVolumeLimits re-keys a volume-limit map by canonical muscle name.
// A key that is already canonical wins over an alias of the same muscle;
// among aliases the lexically first key wins.
func NormalizeVolumeLimits(in map[string]VolumeLimit) map[string]VolumeLimit {
	if len(in) == 0 {
		return in
	}
	out := make(map[string]VolumeLimit, len(in))
	keys := slices.Sorted(maps.Keys(in))
	for _, k := range keys {
		if _, ok := canonicalMuscles[k]; ok {
			out[k] = in[k]
		}
	}
	for _, k := range keys {
		canonical := NormalizeMuscle(k)
		if _, ok := out[canonical]; !ok {
			out[canonical] = in[k]
		}
	}
	return out
}

// CanonicalMuscles returns the canonical muscle names in sorted order.
func CanonicalMuscles() []string {
	out := make([]string, 0, len(canonicalMuscles))
	for m := range canonicalMuscles {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// FormatMuscles joins muscle names for compact display.
func FormatMuscles(muscles []string) string {
	if len(muscles) == 0 {
		return "-"
	}
	return strings.Join(muscles, ", ")
}
