package models

import "time"

// Risk level labels, ordered by severity.
const (
	RiskLevelLow      = "Low"
	RiskLevelMedium   = "Medium"
	RiskLevelHigh     = "High"
	RiskLevelCritical = "Critical"
)

// Risk category labels assigned by the model.
const (
	RiskCategoryFinancial      = "Financial"
	RiskCategoryLegal          = "Legal"
	RiskCategoryCompliance     = "Compliance"
	RiskCategoryEnforceability = "Enforceability"
	RiskCategoryTermination    = "Termination"
)

// RiskAssessment is the scored result for a single contract clause.
// OriginalText is always populated, including on scoring failure, and is the
// join key back to the source clause.
type RiskAssessment struct {
	RiskScore        int    `json:"risk_score" bson:"riskScore"`
	RiskLevel        string `json:"risk_level" bson:"riskLevel"`
	RiskCategory     string `json:"risk_category" bson:"riskCategory"`
	Explanation      string `json:"explanation" bson:"explanation"`
	SaferAlternative string `json:"safer_alternative" bson:"saferAlternative"`
	NegotiationPoint string `json:"negotiation_point" bson:"negotiationPoint"`
	OriginalText     string `json:"original_text" bson:"originalText"`
}

// IsHighSeverity reports whether the assessment should surface in the
// negotiation brief and compliance flags.
func (r RiskAssessment) IsHighSeverity() bool {
	return r.RiskLevel == RiskLevelHigh || r.RiskLevel == RiskLevelCritical
}

// NegotiationPointEntry is one redlining suggestion derived from a
// high-severity clause.
type NegotiationPointEntry struct {
	ClauseRef string `json:"clause_ref" bson:"clauseRef"`
	Severity  string `json:"severity" bson:"severity"`
	Point     string `json:"point" bson:"point"`
}

// ComplianceFlag marks a high-severity clause for legal review.
type ComplianceFlag struct {
	Severity   string `json:"severity" bson:"severity"`
	Reason     string `json:"reason" bson:"reason"`
	ClauseText string `json:"clause_text" bson:"clauseText"`
}

// AnalysisReport is the document-level aggregate returned to the API layer.
// Clauses are sorted by risk score descending; the derived lists inherit
// that order.
type AnalysisReport struct {
	OverallScore     int                     `json:"overall_score" bson:"overallScore"`
	Summary          []string                `json:"summary" bson:"summary"`
	Clauses          []RiskAssessment        `json:"clauses" bson:"clauses"`
	NegotiationBrief []NegotiationPointEntry `json:"negotiation_brief" bson:"negotiationBrief"`
	ComplianceFlags  []ComplianceFlag        `json:"compliance_flags" bson:"complianceFlags"`
}

// AnalysisRecord is the persisted form of a completed analysis.
type AnalysisRecord struct {
	ID             string         `json:"id" bson:"_id"`
	Filename       string         `json:"filename" bson:"filename"`
	ContractType   string         `json:"contract_type" bson:"contractType"`
	TypeConfidence float64        `json:"type_confidence" bson:"typeConfidence"`
	Report         AnalysisReport `json:"report" bson:"report"`
	CreatedAt      time.Time      `json:"created_at" bson:"createdAt"`
}
