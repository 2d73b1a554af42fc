package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// Athlete bundles everything the engine needs to know about one athlete.
type Athlete struct {
	ID       string
	Profile  *schema.AthleteProfile
	Settings schema.Settings
	Feedback map[string][]schema.Feedback
}

// loadFile decodes a YAML or JSON file into T. JSON is valid YAML, so one
// decoder serves both formats.
func loadFile[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return out, nil
}

// LoadAthlete resolves the athlete of an evaluation. An athlete file named in
// the config wins over the settings store; a store without the athlete yields
// defaults and a nil profile.
func LoadAthlete(cfg *contract.Config, store contract.SettingsStore) (Athlete, error) {
	athlete := Athlete{ID: cfg.AthleteID}
	if athlete.ID == "" {
		athlete.ID = contract.DefaultAthleteID
	}

	if cfg.AthleteFile != "" {
		file, err := loadFile[schema.AthleteFile](cfg.AthleteFile)
		if err != nil {
			return athlete, err
		}
		athlete.Profile = file.Profile
		athlete.Settings = file.Settings
		athlete.Settings.VolumeLimits = schema.NormalizeVolumeLimits(athlete.Settings.VolumeLimits)
		athlete.Feedback = normalizeFeedback(file.Feedback)
		if athlete.Settings.AthleteID == "" {
			athlete.Settings.AthleteID = athlete.ID
		}
		return athlete, validateProfile(athlete.Profile)
	}

	athlete.Settings = schema.Settings{AthleteID: athlete.ID}
	if store == nil {
		return athlete, nil
	}

	profile, err := store.GetProfile(athlete.ID)
	switch {
	case err == nil:
		athlete.Profile = &profile
	case !errors.Is(err, contract.ErrNotFound):
		return athlete, err
	}

	settings, err := store.GetSettings(athlete.ID)
	switch {
	case err == nil:
		athlete.Settings = settings
		athlete.Settings.VolumeLimits = schema.NormalizeVolumeLimits(settings.VolumeLimits)
	case !errors.Is(err, contract.ErrNotFound):
		return athlete, err
	}

	feedback, err := store.GetFeedback(athlete.ID)
	switch {
	case err == nil:
		athlete.Feedback = normalizeFeedback(feedback)
	case !errors.Is(err, contract.ErrNotFound):
		return athlete, err
	}
	return athlete, validateProfile(athlete.Profile)
}

// validateProfile rejects sub-scores outside their documented ranges.
func validateProfile(p *schema.AthleteProfile) error {
	if p == nil {
		return nil
	}
	for name, v := range map[string]int{
		"technical_score":   p.TechnicalScore,
		"consistency_score": p.ConsistencyScore,
		"strength_standard": p.StrengthStandard,
	} {
		if v < 1 || v > 3 {
			return fmt.Errorf("%s must be between 1 and 3, got %d", name, v)
		}
	}
	if p.RecoveryCapacity < -1 || p.RecoveryCapacity > 1 {
		return fmt.Errorf("recovery_capacity must be between -1 and 1, got %d", p.RecoveryCapacity)
	}
	return nil
}

func normalizeFeedback(in map[string][]schema.Feedback) map[string][]schema.Feedback {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]schema.Feedback, len(in))
	for muscle, entries := range in {
		key := schema.NormalizeMuscle(muscle)
		out[key] = append(out[key], entries...)
	}
	return out
}

// ResolveProfiles fills in the fatigue profile of every exercise that has none,
// first from the catalog and then, when infer is set, by name inference.
// Exercises left without a profile are returned by name and skipped by the engine.
func ResolveProfiles(exercises []schema.SessionExercise, catalog contract.CatalogStore, infer bool) ([]schema.SessionExercise, []string, error) {
	resolved := make([]schema.SessionExercise, len(exercises))
	copy(resolved, exercises)

	var unresolved []string
	for i := range resolved {
		ex := &resolved[i]
		if ex.Profile != nil {
			continue
		}
		if catalog != nil {
			p, err := catalog.Lookup(ex.ID, ex.Name)
			if err == nil {
				ex.Profile = &p
				continue
			}
			if !errors.Is(err, contract.ErrNotFound) {
				return nil, nil, err
			}
		}
		if infer {
			p := InferFatigueProfile(ex.Name, ex.Equipment, ex.Technique)
			ex.Profile = &p
			contract.Logger().Debug("inferred fatigue profile",
				zap.String("exercise", ex.Name),
				zap.Float64("efc", p.EFC),
				zap.Float64("cnc", p.CNC),
				zap.Float64("ssc", p.SSC),
			)
			continue
		}
		label := ex.Name
		if label == "" {
			label = ex.ID
		}
		unresolved = append(unresolved, label)
	}
	if len(unresolved) > 0 {
		contract.Logger().Warn("exercises without a fatigue profile are skipped",
			zap.Strings("exercises", unresolved))
	}
	return resolved, unresolved, nil
}

// LoadSession reads one session file. A session without an ID is named after its file.
func LoadSession(path string) (schema.SessionInput, error) {
	session, err := loadFile[schema.SessionInput](path)
	if err != nil {
		return session, err
	}
	if session.Day < 0 {
		return session, fmt.Errorf("%s: day must not be negative, got %d", path, session.Day)
	}
	if session.ID == "" {
		session.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return session, nil
}

// LoadSessions reads session files concurrently and returns them in argument order.
func LoadSessions(ctx context.Context, paths []string) ([]schema.SessionInput, error) {
	sessions := make([]schema.SessionInput, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := LoadSession(path)
			if err != nil {
				return err
			}
			sessions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// historyFile accepts either a bare list of daily loads or a mapping with a daily_loads key.
type historyFile struct {
	DailyLoads []float64 `yaml:"daily_loads"`
}

// LoadHistory reads the daily stress loads that precede an evaluated week, oldest first.
func LoadHistory(path string) ([]float64, error) {
	if path == "" {
		return nil, nil
	}
	loads, err := loadFile[[]float64](path)
	if err != nil {
		file, ferr := loadFile[historyFile](path)
		if ferr != nil {
			return nil, ferr
		}
		loads = file.DailyLoads
	}
	for i, v := range loads {
		if v < 0 {
			return nil, fmt.Errorf("daily load %d is negative", i)
		}
	}
	return loads, nil
}

// LoadProgram reads a program template.
func LoadProgram(path string) (schema.ProgramInput, error) {
	program, err := loadFile[schema.ProgramInput](path)
	if err != nil {
		return program, err
	}
	if len(program.Sessions) == 0 {
		return program, fmt.Errorf("program %s has no sessions", path)
	}
	if program.Name == "" {
		program.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return program, nil
}

// LoadCatalog reads an exercise catalog file.
func LoadCatalog(path string) ([]schema.ExerciseFatigueProfile, error) {
	file, err := loadFile[schema.CatalogFile](path)
	if err != nil {
		return nil, err
	}
	return file.Exercises, nil
}

// LoadAthleteFile reads an athlete file for import into the settings store.
func LoadAthleteFile(path string) (schema.AthleteFile, error) {
	file, err := loadFile[schema.AthleteFile](path)
	if err != nil {
		return file, err
	}
	file.Feedback = normalizeFeedback(file.Feedback)
	return file, validateProfile(file.Profile)
}
