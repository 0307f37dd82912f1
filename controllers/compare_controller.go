package controllers

import (
	"mime/multipart"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clauseguard/parser"
	"clauseguard/services"
)

// CompareContracts accepts two versions of a contract and reports the risk
// delta between them.
func CompareContracts(c *gin.Context) {
	file1, err := c.FormFile("file1")
	if err != nil {
		c.JSON(400, gin.H{"error": "Two contract files are required."})
		return
	}
	file2, err := c.FormFile("file2")
	if err != nil {
		c.JSON(400, gin.H{"error": "Two contract files are required."})
		return
	}
	if !isSupportedContract(file1.Filename) || !isSupportedContract(file2.Filename) {
		c.JSON(400, gin.H{"error": "Only PDF and DOCX files are supported."})
		return
	}

	oldClauses, err := saveAndParse(c, file1)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to read document: " + err.Error()})
		return
	}
	newClauses, err := saveAndParse(c, file2)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to read document: " + err.Error()})
		return
	}
	if len(oldClauses) == 0 || len(newClauses) == 0 {
		c.JSON(400, gin.H{"error": "Could not extract text from one or both documents."})
		return
	}

	c.JSON(200, services.CompareContracts(oldClauses, newClauses))
}

func saveAndParse(c *gin.Context, file *multipart.FileHeader) ([]string, error) {
	path := filepath.Join(uploadDir, uuid.NewString()+"_"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return nil, err
	}
	return parser.ProcessDocument(path)
}
