package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/rotnitxe/kpknfit/core"
	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// toolConfig clones the base config and applies the athlete_id argument.
// The athlete file is dropped so that the tool reads the settings store.
func (h *toolHandler) toolConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if id := strings.TrimSpace(request.GetString("athlete_id", "")); id != "" {
		cfg.AthleteID = id
		cfg.AthleteFile = ""
	}
	return cfg
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRecommendVolume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.toolConfig(request)
	if p := request.GetString("phase", ""); p != "" {
		cfg.Phase = schema.TrainingPhase(strings.ToLower(p))
		if _, ok := schema.ValidPhases[cfg.Phase]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid phase '%s'", p)), nil
		}
	}
	if i := request.GetString("intensity", ""); i != "" {
		cfg.Intensity = schema.IntensityTier(strings.ToLower(i))
		if _, ok := schema.ValidIntensityTiers[cfg.Intensity]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid intensity '%s'", i)), nil
		}
	}
	if f := request.GetInt("frequency", 0); f != 0 {
		if f < 1 || f > contract.MaxFrequency {
			return mcp.NewToolResultError(fmt.Sprintf("frequency must be between 1 and %d", contract.MaxFrequency)), nil
		}
		cfg.Frequency = f
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	var muscles []string
	for m := range strings.SplitSeq(request.GetString("muscles", ""), ",") {
		if m = strings.TrimSpace(m); m != "" {
			muscles = append(muscles, m)
		}
	}

	report, err := core.GetRecommendationReport(ctx, cfg, h.mgr, muscles)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleAnalyzeSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.toolConfig(request)
	cfg.InferMissing = request.GetBool("infer_missing", cfg.InferMissing)

	session, err := parseSession(request.GetString("session", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid session: %v", err)), nil
	}

	report, err := core.GetSessionReport(core.WithQuietAlerts(ctx), cfg, h.mgr, session)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session analysis failed: %v", err)), nil
	}
	return jsonResult(report)
}

// parseSession decodes a JSON or YAML session document.
func parseSession(doc string) (schema.SessionInput, error) {
	var session schema.SessionInput
	if strings.TrimSpace(doc) == "" {
		return session, errors.New("session is required")
	}
	if err := yaml.Unmarshal([]byte(doc), &session); err != nil {
		return session, err
	}
	if len(session.Exercises) == 0 {
		return session, errors.New("session has no exercises")
	}
	return session, nil
}

func (h *toolHandler) handleComputeTanks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.toolConfig(request)
	report, err := core.GetTanksReport(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load athlete: %v", err)), nil
	}

	settings := report.Settings
	if kg := request.GetFloat("bodyweight_kg", 0); kg != 0 {
		if kg < 0 {
			return mcp.NewToolResultError("bodyweight_kg cannot be negative"), nil
		}
		settings.BodyweightKg = kg
	}
	if g := request.GetString("calorie_goal", ""); g != "" {
		settings.CalorieGoal = schema.CalorieGoal(strings.ToLower(g))
		if _, ok := schema.ValidCalorieGoals[settings.CalorieGoal]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid calorie_goal '%s'", g)), nil
		}
	}
	if s := request.GetString("life_stress", ""); s != "" {
		settings.LifeStress = schema.StressLevel(strings.ToLower(s))
		switch settings.LifeStress {
		case schema.LowStress, schema.ModerateStress, schema.HighStress:
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid life_stress '%s'", s)), nil
		}
	}
	return jsonResult(core.TanksFor(report.AthleteID, settings))
}
