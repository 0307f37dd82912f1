package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clauseguard/models"
)

func TestCompareClausesIdenticalVersions(t *testing.T) {
	clauses := []string{
		"Either party may terminate this agreement with thirty days notice.",
		"All disputes shall be resolved by binding arbitration.",
	}
	result := CompareClauses(clauses, clauses)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 0, result.DeltaScore)
	assert.Equal(t, "No significant risk change detected.", result.Message)
	assert.Empty(t, result.Changes)
}

func TestCompareClausesDetectsModification(t *testing.T) {
	old := []string{"The supplier shall indemnify the customer against all third party claims."}
	new := []string{"The supplier shall indemnify the customer against all third party claims up to the fees paid."}

	result := CompareClauses(old, new)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeModified, result.Changes[0].Type)
	assert.Equal(t, old[0], result.Changes[0].OldText)
	assert.Equal(t, new[0], result.Changes[0].NewText)
	assert.Equal(t, 0, result.DeltaScore)
}

func TestCompareClausesDetectsRemoval(t *testing.T) {
	old := []string{
		"Either party may terminate this agreement with thirty days notice.",
		"The customer waives all rights to consequential damages under any theory.",
	}
	new := []string{
		"Either party may terminate this agreement with thirty days notice.",
	}

	result := CompareClauses(old, new)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeRemoved, result.Changes[0].Type)
	assert.Equal(t, -5, result.DeltaScore)
	assert.Equal(t, "Risk reduced by 5 points after revision.", result.Message)
}

func TestCompareClausesDetectsAddition(t *testing.T) {
	old := []string{"Either party may terminate this agreement with thirty days notice."}
	new := []string{
		"Either party may terminate this agreement with thirty days notice.",
		"The vendor may assign this agreement without consent from the customer.",
	}

	result := CompareClauses(old, new)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, models.ChangeAdded, result.Changes[0].Type)
	assert.Equal(t, 5, result.DeltaScore)
	assert.Equal(t, "Risk increased by 5 points after revision.", result.Message)
}

func TestTokenSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, tokenSimilarity("the same words", "the same words"))
	assert.Equal(t, 0.0, tokenSimilarity("alpha beta", "gamma delta"))
	assert.Equal(t, 0.0, tokenSimilarity("", "anything"))
}
