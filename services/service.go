package services

import (
	"context"

	"go.uber.org/zap"

	"clauseguard/config"
	"clauseguard/models"
)

// Package-level collaborators wired once at startup.
var (
	analyzer   *Analyzer
	classifier *Classifier
	log        = zap.NewNop().Sugar()
)

// InitAnalysisService builds the Gemini-backed analyzer and classifier from
// the config. A missing API key is not fatal: the pipeline runs end-to-end in
// degraded mode with fallback outputs.
func InitAnalysisService(cfg *config.Config, logger *zap.SugaredLogger) {
	if logger != nil {
		log = logger
	}

	var gen Generator
	if cfg.Gemini.ApiKey == "" {
		log.Warn("GEMINI_API_KEY not set; analysis will return fallback results")
	} else {
		g, err := NewGeminiGenerator(context.Background(), cfg.Gemini.ApiKey, cfg.Gemini.Model)
		if err != nil {
			log.Errorw("failed to initialize gemini client; running degraded", "error", err)
		} else {
			gen = g
		}
	}

	opts := AnalyzerOptions{
		MaxClauses:       cfg.Analysis.MaxClauses,
		BatchSize:        cfg.Analysis.BatchSize,
		Cooldown:         cfg.Cooldown(),
		RequestTimeout:   cfg.RequestTimeout(),
		SummaryCharLimit: cfg.Analysis.SummaryCharLimit,
	}
	analyzer = NewAnalyzer(gen, opts)
	classifier = NewClassifier(gen, cfg.RequestTimeout())
}

// AnalyzeContract runs the clause-analysis pipeline with the shared analyzer.
func AnalyzeContract(ctx context.Context, req AnalysisRequest) models.AnalysisReport {
	return analyzer.Analyze(ctx, req)
}

// ClassifyContract detects the contract type with the shared classifier.
func ClassifyContract(ctx context.Context, text string) (string, float64) {
	return classifier.Classify(ctx, text)
}

// CompareContracts diffs two clause lists.
func CompareContracts(oldClauses, newClauses []string) models.CompareResult {
	return CompareClauses(oldClauses, newClauses)
}
