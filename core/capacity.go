package core

import "github.com/rotnitxe/kpknfit/schema"

// ComputeScore sums the four profile sub-scores into an athlete score in [4,12].
// RecoveryCapacity is shifted from {-1,0,1} to {1,2,3} before summing.
func ComputeScore(p schema.AthleteProfile) int {
	return p.TechnicalScore + p.ConsistencyScore + p.StrengthStandard + (p.RecoveryCapacity + 2)
}

// Classify maps an athlete score to its capability band.
func Classify(score int) schema.Classification {
	band := schema.BeginnerBand
	if score >= schema.AdvancedScoreCutoff {
		band = schema.AdvancedBand
	}
	return schema.Classification{
		Score: score,
		Band:  band,
		Range: schema.GetBandRange(band),
	}
}
