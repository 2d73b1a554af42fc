// Package core has the training-load engine and the orchestration of its commands.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/rotnitxe/kpknfit/core/algo"
	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/internal/outwriter"
	"github.com/rotnitxe/kpknfit/schema"
)

// ExecutorFunc defines the function signature for executing the evaluation commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, args []string) error

// ExecuteRecommend computes the weekly volume targets of the given muscles, or of
// every canonical muscle when none are given, and prints them.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, muscles []string) error {
	start := time.Now()
	report, err := GetRecommendationReport(ctx, cfg, mgr, muscles)
	if err != nil {
		return err
	}
	return outwriter.WriteRecommendations(report, cfg, time.Since(start))
}

// GetRecommendationReport builds the recommendation report without writing it.
func GetRecommendationReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, muscles []string) (schema.RecommendationReport, error) {
	athlete, err := LoadAthlete(cfg, mgr.GetSettingsStore())
	if err != nil {
		return schema.RecommendationReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.RecommendationReport{}, err
	}

	targets := normalizedMuscles(muscles)
	evaluator := NewEvaluator(nil, mgr.GetMemoStore())
	recs := evaluator.Recommend(targets, athlete.Profile, cfg.Phase, cfg.Intensity, cfg.Frequency)

	report := schema.RecommendationReport{
		AthleteID:       athlete.ID,
		Phase:           cfg.Phase,
		Intensity:       cfg.Intensity,
		Frequency:       cfg.Frequency,
		Recommendations: make([]schema.AdjustedRecommendation, 0, len(recs)),
	}
	band := schema.BeginnerBand
	if athlete.Profile != nil {
		c := Classify(ComputeScore(*athlete.Profile))
		report.Classification = &c
		band = c.Band
	}
	lifts := RecommendLifts(band, cfg.Phase)
	report.Lifts = &lifts

	for _, rec := range algo.Top(recs, cfg.ResultLimit) {
		adjusted, adj := AdjustForFeedback(rec, athlete.Feedback[rec.MuscleGroup])
		report.Recommendations = append(report.Recommendations, schema.AdjustedRecommendation{
			Base:       rec,
			Adjusted:   adjusted,
			Adjustment: adj,
		})
	}
	return report, nil
}

// ExecutePlan credits a program template with synergist volume and compares it
// with the athlete's recommendations.
func ExecutePlan(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	start := time.Now()
	program, err := LoadProgram(path)
	if err != nil {
		return err
	}
	athlete, err := LoadAthlete(cfg, mgr.GetSettingsStore())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	week := PlanWeek(program)
	report := schema.PlanReport{
		Program:     program.Name,
		AthleteID:   athlete.ID,
		Phase:       cfg.Phase,
		Intensity:   cfg.Intensity,
		Comparisons: algo.Top(algo.RankPlan(ComparePlan(week, athlete.Profile, cfg.Phase, cfg.Intensity)), cfg.ResultLimit),
		Issues:      checkPlannedSessions(program, athlete.Settings.CalorieGoal),
	}
	return outwriter.WritePlan(report, cfg, time.Since(start))
}

// checkPlannedSessions flags every muscle of every planned session that reaches
// the per-session set warning.
func checkPlannedSessions(program schema.ProgramInput, goal schema.CalorieGoal) []schema.SessionVolumeIssue {
	issues := []schema.SessionVolumeIssue{}
	for _, s := range program.Sessions {
		sets := map[string]int{}
		var order []string
		for _, ex := range s.Exercises {
			m := schema.NormalizeMuscle(ex.TargetMuscle)
			if _, seen := sets[m]; !seen {
				order = append(order, m)
			}
			sets[m] += ex.Sets
		}
		for _, m := range order {
			check := ValidateSessionVolume(sets[m], goal)
			if check.Warn || check.OverLimit {
				issues = append(issues, schema.SessionVolumeIssue{Session: s.Name, Muscle: m, Check: check})
			}
		}
	}
	return issues
}

// ExecuteSession evaluates one session file against the athlete's tanks.
func ExecuteSession(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	start := time.Now()
	session, err := LoadSession(path)
	if err != nil {
		return err
	}
	report, err := GetSessionReport(ctx, cfg, mgr, session)
	if err != nil {
		return err
	}
	return outwriter.WriteSession(report, cfg, time.Since(start))
}

// GetSessionReport evaluates a decoded session without writing the report.
func GetSessionReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, session schema.SessionInput) (schema.SessionReport, error) {
	athlete, err := LoadAthlete(cfg, mgr.GetSettingsStore())
	if err != nil {
		return schema.SessionReport{}, err
	}
	exercises, unresolved, err := ResolveProfiles(session.Exercises, mgr.GetCatalogStore(), cfg.InferMissing)
	if err != nil {
		return schema.SessionReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return schema.SessionReport{}, err
	}

	id := evaluationID(ctx)
	bus := NewAlertBus()
	if shouldEchoAlerts(ctx) {
		defer bus.Subscribe(stderrAlerts(os.Stderr))()
	}
	evaluator := NewEvaluator(bus, mgr.GetMemoStore())

	tanks := ComputeTanks(athlete.Settings)
	sctx := sessionContext(cfg, athlete.Settings)
	sctx.SessionID = session.ID
	summary := evaluator.Evaluate(exercises, tanks, sctx)

	contract.Logger().Debug("session evaluated",
		zap.String("evaluation", id),
		zap.String("session", summary.SessionID),
		zap.Float64("stress", summary.StressScore),
		zap.Int("alerts", len(summary.Alerts)),
	)
	return schema.SessionReport{
		EvaluationID: id,
		EvaluatedAt:  time.Now().UTC(),
		AthleteID:    athlete.ID,
		Tanks:        tanks,
		Unresolved:   unresolved,
		Summary:      summary,
	}, nil
}

// ExecuteWeek evaluates several session files as one training week, in order.
func ExecuteWeek(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, paths []string) error {
	start := time.Now()
	if len(paths) == 0 {
		return errors.New("at least one session file is required")
	}
	sessions, err := LoadSessions(ctx, paths)
	if err != nil {
		return err
	}
	athlete, err := LoadAthlete(cfg, mgr.GetSettingsStore())
	if err != nil {
		return err
	}
	history, err := LoadHistory(cfg.HistoryFile)
	if err != nil {
		return err
	}

	var unresolved []string
	for i := range sessions {
		exercises, missing, err := ResolveProfiles(sessions[i].Exercises, mgr.GetCatalogStore(), cfg.InferMissing)
		if err != nil {
			return err
		}
		sessions[i].Exercises = exercises
		unresolved = append(unresolved, missing...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	id := evaluationID(ctx)
	bus := NewAlertBus()
	if shouldEchoAlerts(ctx) {
		defer bus.Subscribe(stderrAlerts(os.Stderr))()
	}
	evaluator := NewEvaluator(bus, mgr.GetMemoStore())

	tanks := ComputeTanks(athlete.Settings)
	week := evaluator.EvaluateWeek(sessions, tanks, sessionContext(cfg, athlete.Settings), history)

	report := schema.WeekReport{
		EvaluationID: id,
		EvaluatedAt:  time.Now().UTC(),
		AthleteID:    athlete.ID,
		Tanks:        tanks,
		Unresolved:   unresolved,
		Week:         week,
	}
	return outwriter.WriteWeek(report, cfg, time.Since(start))
}

// ExecuteTanks prints the capacity tanks of the configured athlete.
func ExecuteTanks(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	report, err := GetTanksReport(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteTanks(report, cfg)
}

// GetTanksReport resolves the configured athlete and computes their tanks.
func GetTanksReport(cfg *contract.Config, mgr contract.StoreManager) (schema.TanksReport, error) {
	athlete, err := LoadAthlete(cfg, mgr.GetSettingsStore())
	if err != nil {
		return schema.TanksReport{}, err
	}
	return TanksFor(athlete.ID, athlete.Settings), nil
}

// TanksFor builds the tanks report of the given settings.
func TanksFor(athleteID string, settings schema.Settings) schema.TanksReport {
	return schema.TanksReport{
		AthleteID: athleteID,
		Settings:  settings,
		Baseline:  schema.BatteryTanks{CNS: BaselineCNSTank, Muscular: BaselineMuscularTank, Spinal: BaselineSpinalTank},
		Tanks:     ComputeTanks(settings),
	}
}

// ExecuteMetrics displays the lookup tables and curves of the engine.
// This is a static display that needs no store.
func ExecuteMetrics(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteMetrics(BuildMetricsModel(), cfg)
}

// ExecuteCatalogImport loads a catalog file into the catalog store.
func ExecuteCatalogImport(_ context.Context, mgr contract.StoreManager, path string) (int, error) {
	store := mgr.GetCatalogStore()
	if store == nil {
		return 0, errors.New("catalog store is not configured")
	}
	exercises, err := LoadCatalog(path)
	if err != nil {
		return 0, err
	}
	return store.Import(exercises)
}

// ExecuteCatalogList prints the exercises of the catalog store.
func ExecuteCatalogList(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store := mgr.GetCatalogStore()
	if store == nil {
		return errors.New("catalog store is not configured")
	}
	exercises, err := store.List()
	if err != nil {
		return err
	}
	return outwriter.WriteCatalog(exercises, cfg)
}

// ExecuteSettingsImport stores an athlete file under the configured athlete ID.
func ExecuteSettingsImport(_ context.Context, cfg *contract.Config, mgr contract.StoreManager, path string) error {
	store := mgr.GetSettingsStore()
	if store == nil {
		return errors.New("settings store is not configured")
	}
	file, err := LoadAthleteFile(path)
	if err != nil {
		return err
	}
	id := cfg.AthleteID
	if file.Settings.AthleteID != "" && id == contract.DefaultAthleteID {
		id = file.Settings.AthleteID
	}
	file.Settings.AthleteID = id
	return store.PutAthlete(id, file)
}

// sessionContext builds the aggregation context from config and athlete settings.
func sessionContext(cfg *contract.Config, settings schema.Settings) schema.SessionContext {
	return schema.SessionContext{
		VolumeLimits:       settings.VolumeLimits,
		DefaultSessionMax:  cfg.SessionLimit,
		DefaultWeeklyMRV:   cfg.WeeklyMRV,
		DefaultRestSeconds: cfg.RestSeconds,
	}
}

// normalizedMuscles maps user input to canonical muscle names, dropping duplicates.
func normalizedMuscles(muscles []string) []string {
	if len(muscles) == 0 {
		return schema.CanonicalMuscles()
	}
	seen := make(map[string]struct{}, len(muscles))
	out := make([]string, 0, len(muscles))
	for _, m := range muscles {
		n := schema.NormalizeMuscle(m)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// stderrAlerts echoes alerts as they are published, so they show up even when
// the report goes to a file.
func stderrAlerts(w io.Writer) Subscriber {
	warn := color.New(color.FgYellow).SprintFunc()
	crit := color.New(color.FgRed, color.Bold).SprintFunc()
	return SubscriberFunc(func(a schema.VolumeAlert) {
		paint := warn
		if a.Kind == schema.JunkVolumeAlert {
			paint = crit
		}
		_, _ = fmt.Fprintf(w, "🚨 %s: %s\n", paint(a.Muscle), a.Message)
	})
}
