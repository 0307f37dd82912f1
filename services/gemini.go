package services

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// Sampling temperatures per call type. Scoring wants near-deterministic
// numbers; summaries tolerate more phrasing variety.
const (
	scoreTemperature    float32 = 0.1
	summaryTemperature  float32 = 0.2
	classifyTemperature float32 = 0.1
)

// Generator issues a single text-generation request and returns the raw
// model output. Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// GeminiGenerator calls the Gemini API requesting strict JSON output.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a Gemini-backed generator for the given model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	config := &genai.ClientConfig{}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(temperature),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

// cleanModelOutput strips the markdown fences some models still wrap around
// JSON despite the response MIME type.
func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
