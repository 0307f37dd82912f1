package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUsesModelResult(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return `{"label": "Commercial Lease", "confidence": 0.91}`, nil
	}}
	cl := NewClassifier(gen, 0)

	label, confidence := cl.Classify(context.Background(), "This lease agreement is made between landlord and tenant.")
	assert.Equal(t, "Commercial Lease", label)
	assert.Equal(t, 0.91, confidence)
}

func TestClassifyLowConfidenceDegradesToGeneral(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return `{"label": "Commercial Lease", "confidence": 0.2}`, nil
	}}
	cl := NewClassifier(gen, 0)

	label, confidence := cl.Classify(context.Background(), "ambiguous text")
	assert.Equal(t, GeneralContractType, label)
	assert.Equal(t, 0.2, confidence)
}

func TestClassifyUnknownLabelFallsBack(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return `{"label": "Treaty", "confidence": 0.99}`, nil
	}}
	cl := NewClassifier(gen, 0)

	label, confidence := cl.Classify(context.Background(), "employment terms and salary schedule")
	assert.Equal(t, "Employment Agreement", label)
	assert.Equal(t, 0.80, confidence)
}

func TestClassifyCallFailureFallsBack(t *testing.T) {
	gen := &stubGenerator{fn: func(string, float32) (string, error) {
		return "", errors.New("unreachable")
	}}
	cl := NewClassifier(gen, 0)

	label, _ := cl.Classify(context.Background(), "mutual non-disclosure obligations")
	assert.Equal(t, "Non-Disclosure Agreement (NDA)", label)
}

func TestKeywordClassify(t *testing.T) {
	cl := NewClassifier(nil, 0)
	ctx := context.Background()

	cases := []struct {
		text       string
		label      string
		confidence float64
	}{
		{"strict confidentiality obligations apply", "Non-Disclosure Agreement (NDA)", 0.85},
		{"annual salary and employment benefits", "Employment Agreement", 0.80},
		{"the saas platform uptime commitment", "SaaS / Software License", 0.75},
		{"miscellaneous provisions", GeneralContractType, 0.50},
	}
	for _, tc := range cases {
		label, confidence := cl.Classify(ctx, tc.text)
		assert.Equal(t, tc.label, label)
		assert.Equal(t, tc.confidence, confidence)
	}
}
