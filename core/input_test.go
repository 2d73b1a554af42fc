package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/iocache"
	"github.com/rotnitxe/kpknfit/schema"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const athleteYAML = `
profile:
  technical_score: 3
  consistency_score: 3
  strength_standard: 3
  recovery_capacity: 1
settings:
  athlete_id: ana
  bodyweight_kg: 64
  calorie_goal: deficit
  volume_limits:
    Chest: {max_session: 5, max: 16}
    cuádriceps: {max_session: 7, max: 20}
feedback:
  pecho:
    - {doms: 4, strength: 6}
`

func TestLoadAthleteFromFile(t *testing.T) {
	cfg := &contract.Config{AthleteID: "ana", AthleteFile: writeTemp(t, "ana.yaml", athleteYAML)}
	store := &iocache.MockSettingsStore{}

	athlete, err := LoadAthlete(cfg, store)
	require.NoError(t, err)
	assert.Equal(t, "ana", athlete.ID)
	require.NotNil(t, athlete.Profile)
	assert.Equal(t, 12, ComputeScore(*athlete.Profile))
	assert.Equal(t, schema.DeficitGoal, athlete.Settings.CalorieGoal)
	assert.InDelta(t, 5.0, athlete.Settings.VolumeLimits["Chest"].MaxSession, 1e-9)
	assert.InDelta(t, 7.0, athlete.Settings.VolumeLimits["Quads"].MaxSession, 1e-9, "limit keys are normalized")
	assert.NotContains(t, athlete.Settings.VolumeLimits, "cuádriceps")
	assert.Len(t, athlete.Feedback["Chest"], 1, "feedback keys are normalized")
	store.AssertNotCalled(t, "GetProfile", mock.Anything)
}

func TestLoadAthleteFromStore(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store := &iocache.MockSettingsStore{}
		store.On("GetProfile", "ana").Return(maxProfile, nil)
		store.On("GetSettings", "ana").Return(schema.Settings{
			AthleteID: "ana", BodyweightKg: 64,
			VolumeLimits: map[string]schema.VolumeLimit{"pecho": {MaxSession: 4, Max: 14}},
		}, nil)
		store.On("GetFeedback", "ana").Return(map[string][]schema.Feedback{"Quads": {{DOMS: 1, Strength: 9}}}, nil)

		athlete, err := LoadAthlete(&contract.Config{AthleteID: "ana"}, store)
		require.NoError(t, err)
		require.NotNil(t, athlete.Profile)
		assert.Equal(t, maxProfile, *athlete.Profile)
		assert.InDelta(t, 64.0, athlete.Settings.BodyweightKg, 1e-9)
		assert.Equal(t, map[string]schema.VolumeLimit{"Chest": {MaxSession: 4, Max: 14}}, athlete.Settings.VolumeLimits)
		assert.Len(t, athlete.Feedback["Quads"], 1)
		store.AssertExpectations(t)
	})

	t.Run("unknown athlete gets defaults", func(t *testing.T) {
		store := &iocache.MockSettingsStore{}
		store.On("GetProfile", contract.DefaultAthleteID).Return(schema.AthleteProfile{}, contract.ErrNotFound)
		store.On("GetSettings", contract.DefaultAthleteID).Return(schema.Settings{}, contract.ErrNotFound)
		store.On("GetFeedback", contract.DefaultAthleteID).Return(nil, contract.ErrNotFound)

		athlete, err := LoadAthlete(&contract.Config{}, store)
		require.NoError(t, err)
		assert.Equal(t, contract.DefaultAthleteID, athlete.ID)
		assert.Nil(t, athlete.Profile)
		assert.Equal(t, contract.DefaultAthleteID, athlete.Settings.AthleteID)
	})

	t.Run("store failures are returned", func(t *testing.T) {
		store := &iocache.MockSettingsStore{}
		store.On("GetProfile", "ana").Return(schema.AthleteProfile{}, errors.New("connection refused"))

		_, err := LoadAthlete(&contract.Config{AthleteID: "ana"}, store)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("invalid stored profile", func(t *testing.T) {
		store := &iocache.MockSettingsStore{}
		store.On("GetProfile", "ana").Return(schema.AthleteProfile{TechnicalScore: 4, ConsistencyScore: 1, StrengthStandard: 1}, nil)
		store.On("GetSettings", "ana").Return(schema.Settings{}, contract.ErrNotFound)
		store.On("GetFeedback", "ana").Return(nil, contract.ErrNotFound)

		_, err := LoadAthlete(&contract.Config{AthleteID: "ana"}, store)
		assert.ErrorContains(t, err, "technical_score")
	})

	t.Run("no store", func(t *testing.T) {
		athlete, err := LoadAthlete(&contract.Config{AthleteID: "ana"}, nil)
		require.NoError(t, err)
		assert.Nil(t, athlete.Profile)
	})
}

func TestValidateProfile(t *testing.T) {
	assert.NoError(t, validateProfile(nil))
	assert.NoError(t, validateProfile(&minProfile))
	assert.ErrorContains(t, validateProfile(&schema.AthleteProfile{TechnicalScore: 1, ConsistencyScore: 0, StrengthStandard: 1}), "consistency_score")
	assert.ErrorContains(t, validateProfile(&schema.AthleteProfile{TechnicalScore: 1, ConsistencyScore: 1, StrengthStandard: 1, RecoveryCapacity: 2}), "recovery_capacity")
}

func TestResolveProfiles(t *testing.T) {
	inline := schema.SessionExercise{ID: "bench", Name: "Bench Press", Profile: benchPress}
	fromCatalog := schema.SessionExercise{ID: "squat", Name: "Back Squat"}
	inferable := schema.SessionExercise{Name: "Remo con mancuerna"}
	unknown := schema.SessionExercise{ID: "x1", Name: "Mystery Move"}

	catalog := &iocache.MockCatalogStore{}
	catalog.On("Lookup", "squat", "Back Squat").Return(*squat, nil)
	catalog.On("Lookup", "", "Remo con mancuerna").Return(schema.ExerciseFatigueProfile{}, contract.ErrNotFound)
	catalog.On("Lookup", "x1", "Mystery Move").Return(schema.ExerciseFatigueProfile{}, contract.ErrNotFound)

	input := []schema.SessionExercise{inline, fromCatalog, inferable, unknown}

	t.Run("without inference", func(t *testing.T) {
		resolved, unresolved, err := ResolveProfiles(input, catalog, false)
		require.NoError(t, err)
		assert.Same(t, benchPress, resolved[0].Profile)
		require.NotNil(t, resolved[1].Profile)
		assert.Equal(t, "squat", resolved[1].Profile.ID)
		assert.Nil(t, resolved[2].Profile)
		assert.Equal(t, []string{"Remo con mancuerna", "Mystery Move"}, unresolved)
		assert.Nil(t, input[1].Profile, "the input is not modified")
	})

	t.Run("with inference", func(t *testing.T) {
		resolved, unresolved, err := ResolveProfiles(input, catalog, true)
		require.NoError(t, err)
		assert.Empty(t, unresolved)
		require.NotNil(t, resolved[2].Profile)
		assert.Equal(t, "Back", resolved[2].Profile.PrimaryMuscle)
		require.NotNil(t, resolved[3].Profile)
	})

	t.Run("catalog errors abort", func(t *testing.T) {
		broken := &iocache.MockCatalogStore{}
		broken.On("Lookup", mock.Anything, mock.Anything).Return(schema.ExerciseFatigueProfile{}, errors.New("db down"))
		_, _, err := ResolveProfiles([]schema.SessionExercise{fromCatalog}, broken, true)
		assert.ErrorContains(t, err, "db down")
	})

	t.Run("no catalog", func(t *testing.T) {
		_, unresolved, err := ResolveProfiles([]schema.SessionExercise{fromCatalog}, nil, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"Back Squat"}, unresolved)
	})
}

const sessionYAML = `
name: Push
exercises:
  - id: bench
    name: Bench Press
    rest_seconds: 180
    sets:
      - {reps: 8, target_rpe: 8}
      - {reps: 8, target_rpe: 9}
      - {reps: 6, to_failure: true}
`

func TestLoadSession(t *testing.T) {
	s, err := LoadSession(writeTemp(t, "push-day.yaml", sessionYAML))
	require.NoError(t, err)
	assert.Equal(t, "push-day", s.ID)
	assert.Equal(t, "Push", s.Name)
	require.Len(t, s.Exercises, 1)
	assert.Equal(t, 180, s.Exercises[0].RestSeconds)
	require.Len(t, s.Exercises[0].Sets, 3)
	assert.True(t, s.Exercises[0].Sets[2].ToFailure)

	json, err := LoadSession(writeTemp(t, "s.json", `{"id": "json-day", "exercises": [{"id": "bench", "sets": [{"reps": 5}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "json-day", json.ID)

	_, err = LoadSession(writeTemp(t, "bad.yaml", "exercises: [[["))
	assert.ErrorContains(t, err, "cannot parse")

	thu, err := LoadSession(writeTemp(t, "thu.yaml", "day: 4\nexercises: []"))
	require.NoError(t, err)
	assert.Equal(t, 4, thu.Day)

	_, err = LoadSession(writeTemp(t, "neg.yaml", "day: -2\nexercises: []"))
	assert.ErrorContains(t, err, "day must not be negative")

	_, err = LoadSession(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSessions(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"mon", "wed", "fri", "sat"} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(sessionYAML), 0o644))
		paths = append(paths, path)
	}

	sessions, err := LoadSessions(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, sessions, 4)
	assert.Equal(t, "mon", sessions[0].ID)
	assert.Equal(t, "sat", sessions[3].ID)

	_, err = LoadSessions(context.Background(), append(paths, filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadSessions(ctx, paths)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadHistory(t *testing.T) {
	loads, err := LoadHistory("")
	require.NoError(t, err)
	assert.Nil(t, loads)

	loads, err = LoadHistory(writeTemp(t, "list.yaml", "[10, 20, 30]"))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30}, loads)

	loads, err = LoadHistory(writeTemp(t, "map.yaml", "daily_loads: [1, 2]"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, loads)

	_, err = LoadHistory(writeTemp(t, "neg.yaml", "[10, -1]"))
	assert.ErrorContains(t, err, "negative")

	_, err = LoadHistory(writeTemp(t, "neg-map.yaml", "daily_loads: [-5]"))
	assert.ErrorContains(t, err, "negative")
}

func TestLoadProgram(t *testing.T) {
	p, err := LoadProgram(writeTemp(t, "ppl.yaml", `
sessions:
  - name: Push
    exercises:
      - {name: Bench, target_muscle: Chest, sets: 4}
`))
	require.NoError(t, err)
	assert.Equal(t, "ppl", p.Name)
	require.Len(t, p.Sessions, 1)
	assert.Equal(t, 4, p.Sessions[0].Exercises[0].Sets)

	_, err = LoadProgram(writeTemp(t, "empty.yaml", "name: nothing"))
	assert.ErrorContains(t, err, "has no sessions")
}

func TestLoadCatalogAndAthleteFile(t *testing.T) {
	exercises, err := LoadCatalog(writeTemp(t, "catalog.yaml", `
exercises:
  - {id: bench, name: Bench Press, efc: 3.8, cnc: 3.8, ssc: 0.3, primary_muscle: Chest}
  - id: row
    name: Barbell Row
    efc: 4.2
    cnc: 4.0
    ssc: 1.6
    primary_muscle: Back
    involved_muscles:
      - {muscle: Back, role: primary}
      - {muscle: Biceps, role: secondary, activation: 0.5}
`))
	require.NoError(t, err)
	require.Len(t, exercises, 2)
	assert.Equal(t, schema.SecondaryRole, exercises[1].InvolvedMuscles[1].Role)

	file, err := LoadAthleteFile(writeTemp(t, "ana.yaml", athleteYAML))
	require.NoError(t, err)
	assert.Contains(t, file.Feedback, "Chest")

	_, err = LoadAthleteFile(writeTemp(t, "bad.yaml", "profile: {technical_score: 9, consistency_score: 1, strength_standard: 1}"))
	assert.Error(t, err)
}
