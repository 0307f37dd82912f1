package models

// Change types reported by the version comparator.
const (
	ChangeAdded    = "Added"
	ChangeRemoved  = "Removed"
	ChangeModified = "Modified"
)

// ClauseChange describes one difference between two contract versions.
type ClauseChange struct {
	Type        string `json:"type"`
	OldText     string `json:"old_text"`
	NewText     string `json:"new_text"`
	Explanation string `json:"explanation"`
}

// CompareResult is the risk-delta report for two versions of a contract.
type CompareResult struct {
	Status     string         `json:"status"`
	DeltaScore int            `json:"delta_score"`
	Message    string         `json:"message"`
	Changes    []ClauseChange `json:"changes"`
}
