package services

import (
	"fmt"
	"strings"

	"clauseguard/models"
)

// matchThreshold is the minimum token overlap for two clauses to count as
// the same clause across versions.
const matchThreshold = 0.6

// Heuristic per-change weight for the delta score.
const changeWeight = 5

// CompareClauses reports additions, removals and rewordings between two
// versions of a contract. Token overlap only — no semantic diffing.
func CompareClauses(oldClauses, newClauses []string) models.CompareResult {
	matchedNew := make([]bool, len(newClauses))
	changes := make([]models.ClauseChange, 0)

	for _, oc := range oldClauses {
		bestIdx := -1
		bestSim := 0.0
		for j, nc := range newClauses {
			if matchedNew[j] {
				continue
			}
			if sim := tokenSimilarity(oc, nc); sim > bestSim {
				bestSim = sim
				bestIdx = j
			}
		}
		if bestIdx >= 0 && bestSim >= matchThreshold {
			matchedNew[bestIdx] = true
			if oc != newClauses[bestIdx] {
				changes = append(changes, models.ClauseChange{
					Type:        models.ChangeModified,
					OldText:     oc,
					NewText:     newClauses[bestIdx],
					Explanation: "Clause wording changed between versions.",
				})
			}
			continue
		}
		changes = append(changes, models.ClauseChange{
			Type:        models.ChangeRemoved,
			OldText:     oc,
			Explanation: "Clause removed in the new version.",
		})
	}

	for j, nc := range newClauses {
		if matchedNew[j] {
			continue
		}
		changes = append(changes, models.ClauseChange{
			Type:        models.ChangeAdded,
			NewText:     nc,
			Explanation: "Clause added in the new version.",
		})
	}

	delta := 0
	for _, ch := range changes {
		switch ch.Type {
		case models.ChangeAdded:
			delta += changeWeight
		case models.ChangeRemoved:
			delta -= changeWeight
		}
	}

	var message string
	switch {
	case delta < 0:
		message = fmt.Sprintf("Risk reduced by %d points after revision.", -delta)
	case delta > 0:
		message = fmt.Sprintf("Risk increased by %d points after revision.", delta)
	default:
		message = "No significant risk change detected."
	}

	return models.CompareResult{
		Status:     "success",
		DeltaScore: delta,
		Message:    message,
		Changes:    changes,
	}
}

// tokenSimilarity is the Jaccard index over lowercased word sets.
func tokenSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	common := 0
	for tok := range setA {
		if setB[tok] {
			common++
		}
	}
	union := len(setA) + len(setB) - common
	return float64(common) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:!?()\"'")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}
