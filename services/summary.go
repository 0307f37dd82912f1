package services

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const summaryPromptTemplate = `Summarize this %s contract into exactly 5 plain English bullet points for a non-lawyer.
Return ONLY a valid JSON string containing an array of strings, e.g. ["Point 1", "Point 2"].
Contract Text:
%s`

// Summary fallbacks. The "failed" and "unable to parse" messages are distinct
// so observability can tell a dead call from a malformed response.
const (
	summaryNoKeyMessage  = "API key not configured."
	summaryFailedMessage = "Failed to generate summary."
	summaryParseMessage  = "Unable to parse summary."
)

// GenerateSummary asks the model for a 5-bullet plain-language summary of the
// document. Best effort: every failure mode degrades to a one-element list.
func (a *Analyzer) GenerateSummary(ctx context.Context, fullText, contractType string) []string {
	if a.gen == nil {
		return []string{summaryNoKeyMessage}
	}

	if a.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.RequestTimeout)
		defer cancel()
	}

	text := fullText
	if len(text) > a.opts.SummaryCharLimit {
		cut := a.opts.SummaryCharLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, contractType, text)
	raw, err := a.gen.Generate(ctx, prompt, summaryTemperature)
	if err != nil {
		log.Warnw("summary generation failed", "error", err)
		return []string{summaryFailedMessage}
	}

	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warnw("summary response not JSON", "error", err)
		return []string{summaryFailedMessage}
	}
	items, ok := payload.([]any)
	if !ok {
		return []string{summaryParseMessage}
	}
	bullets := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return []string{summaryParseMessage}
		}
		bullets = append(bullets, s)
	}
	return bullets
}
