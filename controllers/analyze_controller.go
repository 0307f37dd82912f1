package controllers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"clauseguard/db"
	"clauseguard/models"
	"clauseguard/parser"
	"clauseguard/services"
	"clauseguard/websocket"
)

const uploadDir = "uploads"

var log = zap.NewNop().Sugar()

// SetLogger installs the shared logger for the controllers package.
func SetLogger(logger *zap.SugaredLogger) {
	if logger != nil {
		log = logger
	}
}

// AnalyzeResponse is the payload returned for a completed contract analysis.
type AnalyzeResponse struct {
	ID               string                         `json:"id"`
	Filename         string                         `json:"filename"`
	ContractType     string                         `json:"contract_type"`
	TypeConfidence   float64                        `json:"type_confidence"`
	OverallScore     int                            `json:"overall_score"`
	Summary          []string                       `json:"summary"`
	Clauses          []models.RiskAssessment        `json:"clauses"`
	NegotiationBrief []models.NegotiationPointEntry `json:"negotiation_brief"`
	ComplianceFlags  []models.ComplianceFlag        `json:"compliance_flags"`
}

func isSupportedContract(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".pdf" || ext == ".docx"
}

// UploadContract accepts a contract file, segments it into clauses, scores
// each clause and returns the aggregated risk report. Clients streaming
// progress over the websocket endpoint pass their own analysis_id form field.
func UploadContract(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "A contract file is required."})
		return
	}
	if !isSupportedContract(file.Filename) {
		c.JSON(400, gin.H{"error": "Only PDF and DOCX files are supported."})
		return
	}

	analysisID := c.PostForm("analysis_id")
	if analysisID == "" {
		analysisID = uuid.NewString()
	}

	path := filepath.Join(uploadDir, analysisID+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		c.JSON(500, gin.H{"error": "Failed to store uploaded file: " + err.Error()})
		return
	}

	clauses, err := parser.ProcessDocument(path)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to read document: " + err.Error()})
		return
	}
	if len(clauses) == 0 {
		c.JSON(400, gin.H{"error": "Could not extract text or clauses from the document."})
		return
	}

	fullText := strings.Join(clauses, " ")
	ctx := c.Request.Context()

	contractType, confidence := services.ClassifyContract(ctx, fullText)

	report := services.AnalyzeContract(ctx, services.AnalysisRequest{
		Clauses:      clauses,
		ContractType: contractType,
		FullText:     fullText,
		Progress: func(batchesDone, batchesTotal, clausesDone int) {
			websocket.DefaultHub.Publish(websocket.ProgressEvent{
				AnalysisID:   analysisID,
				BatchesDone:  batchesDone,
				BatchesTotal: batchesTotal,
				ClausesDone:  clausesDone,
				Done:         batchesDone == batchesTotal,
			})
		},
	})

	if db.Connected() {
		record := models.AnalysisRecord{
			ID:             analysisID,
			Filename:       file.Filename,
			ContractType:   contractType,
			TypeConfidence: confidence,
			Report:         report,
			CreatedAt:      time.Now().UTC(),
		}
		if err := db.SaveAnalysis(record); err != nil {
			log.Warnw("analysis not persisted", "id", analysisID, "error", err)
		}
	}

	c.JSON(200, AnalyzeResponse{
		ID:               analysisID,
		Filename:         file.Filename,
		ContractType:     contractType,
		TypeConfidence:   confidence,
		OverallScore:     report.OverallScore,
		Summary:          report.Summary,
		Clauses:          report.Clauses,
		NegotiationBrief: report.NegotiationBrief,
		ComplianceFlags:  report.ComplianceFlags,
	})
}
