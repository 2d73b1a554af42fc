//go:build basic

// Package integration contains end-to-end tests for the kpkn binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// The database tests need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rotnitxe/kpknfit/schema"
)

// storeless runs the engine from files only.
var storeless = []string{"KPKN_CATALOG_BACKEND=none", "KPKN_MEMO_BACKEND=none"}

// TestRecommendFromAthleteFile checks the classification and feedback adjustment end to end.
func TestRecommendFromAthleteFile(t *testing.T) {
	out, err := runKpkn(t, storeless, "recommend", "pecho", "espalda", "--athlete-file", "athlete.yaml", "--output", "json")
	require.NoError(t, err)

	var report schema.RecommendationReport
	require.NoError(t, json.Unmarshal(out, &report))
	require.NotNil(t, report.Classification)
	assert.Equal(t, 9, report.Classification.Score)
	require.Len(t, report.Recommendations, 2)

	byMuscle := map[string]schema.AdjustedRecommendation{}
	for _, rec := range report.Recommendations {
		byMuscle[rec.Adjusted.MuscleGroup] = rec
	}
	require.Contains(t, byMuscle, "Chest")
	require.Contains(t, byMuscle, "Back")
	assert.Equal(t, schema.RecoveryDebtReason, byMuscle["Chest"].Adjustment.Reason)
	assert.Less(t, byMuscle["Chest"].Adjusted.MaxAdaptiveVolume, byMuscle["Back"].Adjusted.MaxAdaptiveVolume)
}

// TestSessionInfersUnknownExercises checks that sessions evaluate without a catalog.
func TestSessionInfersUnknownExercises(t *testing.T) {
	out, err := runKpkn(t, storeless, "session", "push.yaml", "--athlete-file", "athlete.yaml", "--output", "json")
	require.NoError(t, err)
	var skipped schema.SessionReport
	require.NoError(t, json.Unmarshal(out, &skipped))
	assert.Equal(t, []string{"Bench Press", "Back Squat"}, skipped.Unresolved)

	out, err = runKpkn(t, storeless, "session", "push.yaml", "--athlete-file", "athlete.yaml", "--infer-missing", "--output", "json")
	require.NoError(t, err)

	var report schema.SessionReport
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, "ana", report.AthleteID)
	assert.Empty(t, report.Unresolved)
	assert.Equal(t, "push-a", report.Summary.SessionID)
	assert.Len(t, report.EvaluationID, 36)
	assert.Positive(t, report.Summary.Totals.CNSDrainPct)
}

// TestTanksFromAthleteFile checks the stress and bodyweight multipliers.
func TestTanksFromAthleteFile(t *testing.T) {
	out, err := runKpkn(t, storeless, "tanks", "--athlete-file", "athlete.yaml", "--output", "json")
	require.NoError(t, err)

	var report schema.TanksReport
	require.NoError(t, json.Unmarshal(out, &report))
	assert.InDelta(t, report.Baseline.CNS*1.05, report.Tanks.CNS, 1e-9, "low stress raises the CNS tank")
	assert.Greater(t, report.Baseline.Muscular, report.Tanks.Muscular, "a light athlete has a smaller muscular tank")
}
