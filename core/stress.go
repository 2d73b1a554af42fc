package core

import (
	"github.com/montanaflynn/stats"

	"github.com/rotnitxe/kpknfit/schema"
)

// Session stress levels.
const (
	StressLow       = "Low"
	StressOptimal   = "Optimal"
	StressHigh      = "High"
	StressExcessive = "Excessive"
)

// ACWR zones.
const (
	ZoneInsufficient = "insufficient data"
	ZoneLowLoad      = "low load"
	ZoneUnder        = "undertraining"
	ZoneSafe         = "safe"
	ZoneRisk         = "risk zone"
	ZoneHighRisk     = "high risk"
)

const (
	acuteWindowDays   = 7
	chronicWindowDays = 28
	minWeeklyChronic  = 10.0
	minTrainingDays   = 7
)

// ClassifyStress labels a session stress score.
func ClassifyStress(score float64) string {
	switch {
	case score < 40:
		return StressLow
	case score < 80:
		return StressOptimal
	case score < 120:
		return StressHigh
	default:
		return StressExcessive
	}
}

// ClassifyACWR labels an acute:chronic workload ratio.
func ClassifyACWR(ratio float64) string {
	switch {
	case ratio < 0.8:
		return ZoneUnder
	case ratio <= 1.3:
		return ZoneSafe
	case ratio <= 1.5:
		return ZoneRisk
	default:
		return ZoneHighRisk
	}
}

// ComputeACWR compares the load of the last 7 days with the mean weekly load
// of the last 28. dailyLoads is ordered oldest first with one entry per
// calendar day, rest days included; days before the series count as zero.
// Fewer than 7 training days, or a chronic load under 10 per week, yields a
// zero ratio.
func ComputeACWR(dailyLoads []float64) schema.ACWRResult {
	if trainingDays(dailyLoads) < minTrainingDays {
		return schema.ACWRResult{Zone: ZoneInsufficient}
	}
	acute, _ := stats.Sum(lastN(dailyLoads, acuteWindowDays))
	window, _ := stats.Sum(lastN(dailyLoads, chronicWindowDays))
	chronic := window / (chronicWindowDays / acuteWindowDays)

	res := schema.ACWRResult{Acute: acute, Chronic: chronic}
	if chronic < minWeeklyChronic {
		res.Zone = ZoneLowLoad
		return res
	}
	ratio := acute / chronic
	res.Ratio, _ = stats.Round(ratio, 2)
	res.Zone = ClassifyACWR(ratio)
	return res
}

func trainingDays(dailyLoads []float64) int {
	n := 0
	for _, l := range dailyLoads {
		if l > 0 {
			n++
		}
	}
	return n
}

func lastN(values []float64, n int) stats.Float64Data {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	return stats.Float64Data(values)
}
