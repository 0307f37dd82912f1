package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"clauseguard/models"
)

// Fallback ask for high-severity clauses whose assessment carried no
// negotiation point.
const defaultNegotiationPoint = "Request review of this term."

// AnalyzerOptions control the batching schedule. The defaults track the
// Gemini free tier (roughly 5 requests/minute): small batches with a long
// idle gap between them.
type AnalyzerOptions struct {
	MaxClauses       int
	BatchSize        int
	Cooldown         time.Duration
	RequestTimeout   time.Duration
	SummaryCharLimit int
}

// DefaultAnalyzerOptions returns the production schedule.
func DefaultAnalyzerOptions() AnalyzerOptions {
	return AnalyzerOptions{
		MaxClauses:       20,
		BatchSize:        4,
		Cooldown:         15 * time.Second,
		RequestTimeout:   30 * time.Second,
		SummaryCharLimit: 30000,
	}
}

// ProgressFunc receives a notification after each batch completes.
type ProgressFunc func(batchesDone, batchesTotal, clausesDone int)

// AnalysisRequest carries one document's worth of work for the analyzer.
type AnalysisRequest struct {
	Clauses      []string
	ContractType string
	FullText     string
	Progress     ProgressFunc
}

// Analyzer drives per-clause risk scoring under the batching schedule and
// aggregates the results into a report. A nil Generator puts the analyzer in
// degraded mode where every call yields its credential-absent fallback.
type Analyzer struct {
	gen  Generator
	opts AnalyzerOptions
}

// NewAnalyzer builds an analyzer. Zero MaxClauses, BatchSize or
// SummaryCharLimit fall back to defaults; a zero Cooldown or RequestTimeout
// is honored as-is so tests can run without sleeping.
func NewAnalyzer(gen Generator, opts AnalyzerOptions) *Analyzer {
	defaults := DefaultAnalyzerOptions()
	if opts.MaxClauses <= 0 {
		opts.MaxClauses = defaults.MaxClauses
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaults.BatchSize
	}
	if opts.SummaryCharLimit <= 0 {
		opts.SummaryCharLimit = defaults.SummaryCharLimit
	}
	return &Analyzer{gen: gen, opts: opts}
}

// Analyze scores every clause (up to the configured cap) and returns the
// aggregated report. It never fails: degraded calls resolve to fallback
// assessments and the report is always structurally complete.
func (a *Analyzer) Analyze(ctx context.Context, req AnalysisRequest) models.AnalysisReport {
	clauses := req.Clauses
	if len(clauses) > a.opts.MaxClauses {
		clauses = clauses[:a.opts.MaxClauses]
	}

	assessments := make([]models.RiskAssessment, len(clauses))
	batchesTotal := (len(clauses) + a.opts.BatchSize - 1) / a.opts.BatchSize
	batchesDone := 0

	for start := 0; start < len(clauses); start += a.opts.BatchSize {
		end := start + a.opts.BatchSize
		if end > len(clauses) {
			end = len(clauses)
		}

		// All batch members run concurrently; each goroutine writes only its
		// own slot, so the flat list keeps submission order regardless of
		// completion order.
		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				assessments[i] = a.AnalyzeSingleClause(gctx, clauses[i], req.ContractType)
				return nil
			})
		}
		// Scorer goroutines never return errors; Wait is purely a barrier.
		_ = g.Wait()

		batchesDone++
		if req.Progress != nil {
			req.Progress(batchesDone, batchesTotal, end)
		}

		// No cooldown after the final batch.
		if end < len(clauses) {
			a.coolDown(ctx)
		}
	}

	summary := a.GenerateSummary(ctx, req.FullText, req.ContractType)
	return BuildReport(assessments, summary)
}

func (a *Analyzer) coolDown(ctx context.Context) {
	if a.opts.Cooldown <= 0 {
		return
	}
	t := time.NewTimer(a.opts.Cooldown)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// BuildReport aggregates per-clause assessments and a document summary into
// the final report. Pure function of its inputs: overall score is the
// truncated mean, clauses sort by score descending (stable), and the
// negotiation brief and compliance flags are the High/Critical subsequence in
// that same order.
func BuildReport(assessments []models.RiskAssessment, summary []string) models.AnalysisReport {
	overall := 0
	if len(assessments) > 0 {
		total := 0
		for _, c := range assessments {
			total += c.RiskScore
		}
		overall = total / len(assessments)
	}

	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].RiskScore > assessments[j].RiskScore
	})

	brief := make([]models.NegotiationPointEntry, 0)
	flags := make([]models.ComplianceFlag, 0)
	for _, c := range assessments {
		if !c.IsHighSeverity() {
			continue
		}
		point := c.NegotiationPoint
		if point == "" {
			point = defaultNegotiationPoint
		}
		brief = append(brief, models.NegotiationPointEntry{
			ClauseRef: clauseRef(c.OriginalText),
			Severity:  c.RiskLevel,
			Point:     point,
		})
		flags = append(flags, models.ComplianceFlag{
			Severity:   c.RiskLevel,
			Reason:     c.Explanation,
			ClauseText: c.OriginalText,
		})
	}

	return models.AnalysisReport{
		OverallScore:     overall,
		Summary:          summary,
		Clauses:          assessments,
		NegotiationBrief: brief,
		ComplianceFlags:  flags,
	}
}

// clauseRef abbreviates a clause to its first 50 characters for display.
func clauseRef(text string) string {
	runes := []rune(text)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	return string(runes) + "..."
}
