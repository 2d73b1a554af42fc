package core

import (
	"math"
	"strings"

	"github.com/rotnitxe/kpknfit/schema"
)

// Default costs of an exercise that matches no known movement pattern.
const (
	accessoryEFC = 2.5
	accessoryCNC = 2.5
	accessorySSC = 0.1

	minCost    = 1.0
	maxCost    = 5.0
	maxSpinal  = 2.0
	minSpinal  = 0.0
	inferredID = "inferred"
)

type costs struct {
	efc, ssc, cnc float64
}

// movementPattern is a family of lifts sharing a base cost. Variants refine it
// and the first matching variant wins.
type movementPattern struct {
	keywords []string
	primary  string
	base     costs
	variants []patternVariant
}

type patternVariant struct {
	keywords []string
	primary  string
	costs    costs
}

var movementPatterns = []movementPattern{
	{
		keywords: []string{"peso muerto", "deadlift", "rdl"},
		primary:  "Back",
		base:     costs{5.0, 2.0, 5.0},
		variants: []patternVariant{
			{[]string{"rumano", "rdl", "romanian"}, "Hamstrings", costs{4.2, 1.8, 4.0}},
			{[]string{"sumo"}, "Quads", costs{4.8, 1.6, 4.8}},
		},
	},
	{
		keywords: []string{"sentadilla", "squat"},
		primary:  "Quads",
		base:     costs{4.5, 1.5, 4.5},
		variants: []patternVariant{
			{[]string{"frontal", "front"}, "Quads", costs{4.2, 1.2, 4.5}},
			{[]string{"búlgara", "bulgara", "bulgarian"}, "Quads", costs{3.8, 0.8, 3.5}},
			{[]string{"hack"}, "Quads", costs{3.5, 0.4, 3.0}},
		},
	},
	{keywords: []string{"press militar", "ohp", "overhead press"}, primary: "Shoulders", base: costs{4.0, 1.5, 4.2}},
	{keywords: []string{"press banca", "bench press"}, primary: "Chest", base: costs{3.8, 0.3, 3.8}},
	{keywords: []string{"dominada", "pull-up", "pullup", "chin-up"}, primary: "Back", base: costs{4.0, 0.2, 4.0}},
	{
		keywords: []string{"remo", "row"},
		primary:  "Back",
		base:     costs{4.2, 1.6, 4.0},
		variants: []patternVariant{
			{[]string{"seal", "pecho apoyado", "chest supported"}, "Back", costs{3.2, 0.1, 2.5}},
		},
	},
	{keywords: []string{"hip thrust", "puente", "glute bridge"}, primary: "Glutes", base: costs{3.5, 0.5, 3.0}},
	{keywords: []string{"clean", "snatch"}, primary: "Quads", base: costs{4.8, 1.8, 5.0}},
}

// InferFatigueProfile estimates the static costs of an exercise from its name,
// equipment and technique. It is used when the catalog has no entry.
func InferFatigueProfile(name, equipment, technique string) schema.ExerciseFatigueProfile {
	lower := strings.ToLower(name)
	equip := strings.ToLower(equipment)
	tech := strings.ToLower(technique)

	c := costs{accessoryEFC, accessorySSC, accessoryCNC}
	primary := ""
	for _, p := range movementPatterns {
		if !containsAny(lower, p.keywords) {
			continue
		}
		c, primary = p.base, p.primary
		for _, v := range p.variants {
			if containsAny(lower, v.keywords) {
				c, primary = v.costs, v.primary
				break
			}
		}
		break
	}

	switch {
	case containsAny(lower, []string{"mancuerna", "dumbbell"}) || containsAny(equip, []string{"mancuerna", "dumbbell"}):
		c.cnc += 0.2
		c.ssc -= 0.2
	case containsAny(lower, []string{"smith", "multipower"}) || containsAny(equip, []string{"smith"}):
		c.cnc -= 0.5
		c.efc -= 0.2
	case containsAny(lower, []string{"polea", "cable"}) || containsAny(equip, []string{"polea", "cable"}):
		c.cnc -= 0.3
		c.efc += 0.2
	}

	if containsAny(lower, []string{"pausa", "paused"}) || containsAny(tech, []string{"pause"}) {
		c.cnc += 0.3
		c.efc += 0.5
	}
	if containsAny(lower, []string{"déficit", "deficit"}) {
		c.ssc += 0.2
		c.efc += 0.3
	}
	if containsAny(lower, []string{"parcial", "partial", "rack pull", "block"}) {
		c.ssc += 0.2
		c.efc -= 0.2
	}

	if primary == "" {
		primary = schema.NormalizeMuscle(name)
	}
	return schema.ExerciseFatigueProfile{
		ID:            inferredID,
		Name:          name,
		EFC:           clamp(c.efc, minCost, maxCost),
		CNC:           clamp(c.cnc, minCost, maxCost),
		SSC:           clamp(c.ssc, minSpinal, maxSpinal),
		PrimaryMuscle: primary,
		Equipment:     equipment,
	}
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
