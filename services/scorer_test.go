package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clauseguard/models"
)

const testClause = "The supplier may modify pricing at any time without notice to the customer."

func TestAnalyzeSingleClauseParsesResponse(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return `{
			"risk_score": 72,
			"risk_level": "High",
			"risk_category": "Financial",
			"explanation": "Unilateral price changes shift all cost risk to the customer.",
			"safer_alternative": "Price changes require 60 days written notice.",
			"negotiation_point": "Ask for a price change cap."
		}`, nil
	}}
	a := NewAnalyzer(gen, AnalyzerOptions{})

	got := a.AnalyzeSingleClause(context.Background(), testClause, "Vendor Agreement")

	assert.Equal(t, 72, got.RiskScore)
	assert.Equal(t, models.RiskLevelHigh, got.RiskLevel)
	assert.Equal(t, models.RiskCategoryFinancial, got.RiskCategory)
	assert.Equal(t, testClause, got.OriginalText)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Vendor Agreement")
	assert.Contains(t, gen.prompts[0], testClause)
}

func TestAnalyzeSingleClauseOptionalNegotiationPoint(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return `{
			"risk_score": 15,
			"risk_level": "Low",
			"risk_category": "Legal",
			"explanation": "Routine clause.",
			"safer_alternative": "No change needed."
		}`, nil
	}}
	a := NewAnalyzer(gen, AnalyzerOptions{})

	got := a.AnalyzeSingleClause(context.Background(), testClause, "NDA")
	assert.Equal(t, 15, got.RiskScore)
	assert.Empty(t, got.NegotiationPoint)
}

func TestAnalyzeSingleClauseFallbacks(t *testing.T) {
	cases := []struct {
		name string
		fn   func(string, float32) (string, error)
	}{
		{"transport error", func(string, float32) (string, error) {
			return "", errors.New("429 rate limited")
		}},
		{"malformed json", func(string, float32) (string, error) {
			return "risk is high, trust me", nil
		}},
		{"score out of range", func(string, float32) (string, error) {
			return scoredResponse(150, models.RiskLevelHigh), nil
		}},
		{"unknown risk level", func(string, float32) (string, error) {
			return scoredResponse(50, "Severe"), nil
		}},
		{"missing required field", func(string, float32) (string, error) {
			return `{"risk_score": 50, "risk_level": "High"}`, nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalyzer(&stubGenerator{fn: tc.fn}, AnalyzerOptions{})
			got := a.AnalyzeSingleClause(context.Background(), testClause, "NDA")

			assert.Equal(t, 0, got.RiskScore)
			assert.Equal(t, models.RiskLevelLow, got.RiskLevel)
			assert.Equal(t, models.RiskCategoryLegal, got.RiskCategory)
			assert.Equal(t, "Error analyzing this clause.", got.Explanation)
			assert.Equal(t, testClause, got.SaferAlternative)
			assert.Equal(t, testClause, got.OriginalText)
			assert.Empty(t, got.NegotiationPoint)
		})
	}
}

func TestAnalyzeSingleClauseWithoutCredentials(t *testing.T) {
	a := NewAnalyzer(nil, AnalyzerOptions{})
	got := a.AnalyzeSingleClause(context.Background(), testClause, "NDA")

	assert.Equal(t, 0, got.RiskScore)
	assert.Equal(t, "API key not configured.", got.Explanation)
	assert.Equal(t, testClause, got.OriginalText)
}

func TestCleanModelOutputStripsFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanModelOutput("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanModelOutput(`{"a":1}`))
}
