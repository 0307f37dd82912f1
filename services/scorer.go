package services

import (
	"context"
	"encoding/json"
	"fmt"

	"clauseguard/models"
)

const riskPromptTemplate = `System: You are a senior legal risk analyst specializing in commercial contracts.
Analyze the following contract clause and return ONLY a valid JSON object with no markdown and no explanation outside the JSON.
Contract Type: %s
Clause: %s

Format:
{
  "risk_score": 0-100 (integer),
  "risk_level": "Low" | "Medium" | "High" | "Critical",
  "risk_category": "Financial" | "Legal" | "Compliance" | "Enforceability" | "Termination",
  "explanation": "2 sentence plain English explanation",
  "safer_alternative": "rewritten safe version",
  "negotiation_point": "what to ask the other side"
}`

// Fallback explanations for the two scoring failure modes.
const (
	scoreErrorExplanation = "Error analyzing this clause."
	scoreNoKeyExplanation = "API key not configured."
)

var validRiskLevels = map[string]bool{
	models.RiskLevelLow:      true,
	models.RiskLevelMedium:   true,
	models.RiskLevelHigh:     true,
	models.RiskLevelCritical: true,
}

var validRiskCategories = map[string]bool{
	models.RiskCategoryFinancial:      true,
	models.RiskCategoryLegal:          true,
	models.RiskCategoryCompliance:     true,
	models.RiskCategoryEnforceability: true,
	models.RiskCategoryTermination:    true,
}

// AnalyzeSingleClause scores one clause against the contract type. It never
// returns an error: any failure collapses to an inert zero-score assessment
// so a bad call cannot abort its batch.
func (a *Analyzer) AnalyzeSingleClause(ctx context.Context, clause, contractType string) models.RiskAssessment {
	if a.gen == nil {
		return fallbackAssessment(clause, scoreNoKeyExplanation)
	}

	if a.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.RequestTimeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(riskPromptTemplate, contractType, clause)
	raw, err := a.gen.Generate(ctx, prompt, scoreTemperature)
	if err != nil {
		log.Warnw("clause scoring failed", "error", err)
		return fallbackAssessment(clause, scoreErrorExplanation)
	}

	assessment, err := parseRiskAssessment(raw, clause)
	if err != nil {
		log.Warnw("clause response malformed", "error", err)
		return fallbackAssessment(clause, scoreErrorExplanation)
	}
	return assessment
}

// riskPayload mirrors the model's JSON shape with pointers so missing keys
// are distinguishable from zero values.
type riskPayload struct {
	RiskScore        *int    `json:"risk_score"`
	RiskLevel        *string `json:"risk_level"`
	RiskCategory     *string `json:"risk_category"`
	Explanation      *string `json:"explanation"`
	SaferAlternative *string `json:"safer_alternative"`
	NegotiationPoint *string `json:"negotiation_point"`
}

// parseRiskAssessment validates the model output and binds it back to the
// source clause. A missing or out-of-range field fails the whole record: a
// partially populated assessment never leaves this function.
func parseRiskAssessment(raw, clause string) (models.RiskAssessment, error) {
	var payload riskPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return models.RiskAssessment{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if payload.RiskScore == nil || payload.RiskLevel == nil || payload.RiskCategory == nil ||
		payload.Explanation == nil || payload.SaferAlternative == nil {
		return models.RiskAssessment{}, fmt.Errorf("missing required field in response")
	}
	if *payload.RiskScore < 0 || *payload.RiskScore > 100 {
		return models.RiskAssessment{}, fmt.Errorf("risk_score %d out of range", *payload.RiskScore)
	}
	if !validRiskLevels[*payload.RiskLevel] {
		return models.RiskAssessment{}, fmt.Errorf("unknown risk_level %q", *payload.RiskLevel)
	}
	if !validRiskCategories[*payload.RiskCategory] {
		return models.RiskAssessment{}, fmt.Errorf("unknown risk_category %q", *payload.RiskCategory)
	}

	assessment := models.RiskAssessment{
		RiskScore:        *payload.RiskScore,
		RiskLevel:        *payload.RiskLevel,
		RiskCategory:     *payload.RiskCategory,
		Explanation:      *payload.Explanation,
		SaferAlternative: *payload.SaferAlternative,
		OriginalText:     clause,
	}
	if payload.NegotiationPoint != nil {
		assessment.NegotiationPoint = *payload.NegotiationPoint
	}
	return assessment, nil
}

// fallbackAssessment is the inert record returned for any scoring failure.
// Score zero here means "could not assess", not "no risk".
func fallbackAssessment(clause, explanation string) models.RiskAssessment {
	return models.RiskAssessment{
		RiskScore:        0,
		RiskLevel:        models.RiskLevelLow,
		RiskCategory:     models.RiskCategoryLegal,
		Explanation:      explanation,
		SaferAlternative: clause,
		NegotiationPoint: "",
		OriginalText:     clause,
	}
}
