package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// GeneralContractType is the catch-all label when classification is
// uncertain.
const GeneralContractType = "General Commercial Contract"

// ContractTypeLabels are the candidate labels offered to the model.
var ContractTypeLabels = []string{
	"Non-Disclosure Agreement (NDA)",
	"Employment Agreement",
	"SaaS / Software License",
	"Vendor Agreement",
	"Partnership Agreement",
	"Commercial Lease",
	"Consulting Agreement",
	"Share Purchase Agreement",
	GeneralContractType,
}

const classifyPromptTemplate = `Classify the following contract excerpt into exactly one of these types:
%s

Return ONLY a valid JSON object of the form {"label": "<one of the types above>", "confidence": <number between 0 and 1>}.
Excerpt:
%s`

// classifySnippetLen bounds how much of the document the classifier reads.
const classifySnippetLen = 1500

// minClassifyConfidence is the floor under which we fall back to the
// general label.
const minClassifyConfidence = 0.4

// Classifier detects the contract type from the opening of the document,
// degrading to keyword matching when the model is unavailable.
type Classifier struct {
	gen     Generator
	timeout time.Duration
}

func NewClassifier(gen Generator, timeout time.Duration) *Classifier {
	return &Classifier{gen: gen, timeout: timeout}
}

// Classify returns the detected contract type and a 0–1 confidence. It never
// fails: model errors and unrecognized labels degrade to the keyword
// fallback.
func (cl *Classifier) Classify(ctx context.Context, text string) (string, float64) {
	snippet := text
	if runes := []rune(snippet); len(runes) > classifySnippetLen {
		snippet = string(runes[:classifySnippetLen])
	}

	if cl.gen == nil {
		return keywordClassify(snippet)
	}

	if cl.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.timeout)
		defer cancel()
	}

	prompt := fmt.Sprintf(classifyPromptTemplate, strings.Join(ContractTypeLabels, "\n"), snippet)
	raw, err := cl.gen.Generate(ctx, prompt, classifyTemperature)
	if err != nil {
		log.Warnw("contract classification failed", "error", err)
		return keywordClassify(snippet)
	}

	var result struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Warnw("classification response malformed", "error", err)
		return keywordClassify(snippet)
	}
	if !isKnownContractType(result.Label) {
		return keywordClassify(snippet)
	}
	if result.Confidence < minClassifyConfidence {
		return GeneralContractType, result.Confidence
	}
	return result.Label, result.Confidence
}

func isKnownContractType(label string) bool {
	for _, l := range ContractTypeLabels {
		if l == label {
			return true
		}
	}
	return false
}

// keywordClassify is the no-model fallback: crude keyword matching over the
// document opening.
func keywordClassify(text string) (string, float64) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "non-disclosure") || strings.Contains(lower, "confidentiality"):
		return "Non-Disclosure Agreement (NDA)", 0.85
	case strings.Contains(lower, "employment") || strings.Contains(lower, "salary"):
		return "Employment Agreement", 0.80
	case strings.Contains(lower, "software") || strings.Contains(lower, "saas") || strings.Contains(lower, "service level"):
		return "SaaS / Software License", 0.75
	default:
		return GeneralContractType, 0.50
	}
}
