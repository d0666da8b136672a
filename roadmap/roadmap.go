// Package roadmap produces the per-tier support plan and the
// recommendation search queries. Everything here is pure: templates
// are fixed at compile time and rendered in the working language,
// translation happens downstream.
package roadmap

import (
	"sentiment-insight/models"
	"sentiment-insight/severity"
)

// Step urgency tags, most urgent first in any plan.
const (
	LevelCritical   = "critical"
	LevelSupportive = "supportive"
	LevelNormal     = "normal"
)

var highPlan = []models.RoadmapStep{
	{Text: "PAUSE NON-ESSENTIAL ACTIVITIES IMMEDIATELY.", Level: LevelCritical},
	{Text: "ENSURE YOU ARE IN A SAFE ENVIRONMENT.", Level: LevelCritical},
	{Text: "CONSULT A QUALIFIED MEDICAL OR MENTAL HEALTH PROFESSIONAL IMMEDIATELY.", Level: LevelCritical},
}

var mildPlan = []models.RoadmapStep{
	{Text: "Temporarily reduce cognitive and emotional load.", Level: LevelNormal},
	{Text: "Complete one low-effort task to regain a sense of control.", Level: LevelNormal},
	{Text: "Explicitly identify what is within your control today.", Level: LevelNormal},
	{Text: "Speak to someone you trust and can confide in.", Level: LevelSupportive},
}

var lowPlan = []models.RoadmapStep{
	{Text: "Maintain current emotional balance without overextending.", Level: LevelNormal},
	{Text: "Channel motivation into one clearly defined short-term goal.", Level: LevelNormal},
}

// Generate returns the plan for a tier. The returned slice is a fresh
// copy; callers rewrite step text in place when translating.
func Generate(tier severity.Tier) []models.RoadmapStep {
	var plan []models.RoadmapStep
	switch tier {
	case severity.High:
		plan = highPlan
	case severity.Mild:
		plan = mildPlan
	default:
		plan = lowPlan
	}
	out := make([]models.RoadmapStep, len(plan))
	copy(out, plan)
	return out
}
