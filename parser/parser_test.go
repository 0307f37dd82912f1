package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	in := "This  Agreement\n\nis entered   into\nby the parties. "
	assert.Equal(t, "This Agreement is entered into by the parties.", CleanText(in))
}

func TestSegmentClausesSplitsSentences(t *testing.T) {
	text := "This Agreement is governed by the laws of the State of Delaware. " +
		"The parties consent to exclusive jurisdiction in Wilmington; " +
		"venue objections are waived by both parties to this Agreement."

	clauses := SegmentClauses(text)

	require.Len(t, clauses, 3)
	assert.Equal(t, "This Agreement is governed by the laws of the State of Delaware.", clauses[0])
	assert.Equal(t, "The parties consent to exclusive jurisdiction in Wilmington;", clauses[1])
}

func TestSegmentClausesDropsShortFragments(t *testing.T) {
	text := "Section 1. Definitions apply. " +
		"Each party shall maintain the confidentiality of all disclosed information."

	clauses := SegmentClauses(text)

	require.Len(t, clauses, 1)
	assert.Equal(t, "Each party shall maintain the confidentiality of all disclosed information.", clauses[0])
}

func TestSegmentClausesKeepsDecimalsAndAbbreviations(t *testing.T) {
	text := "The contractor shall be paid a fee of 4.5 percent of net revenue as defined in Sec. 12 of this Agreement."

	clauses := SegmentClauses(text)

	require.Len(t, clauses, 1)
	assert.Contains(t, clauses[0], "4.5 percent")
	assert.Contains(t, clauses[0], "Sec. 12")
}

func TestProcessDocumentUnsupportedType(t *testing.T) {
	clauses, err := ProcessDocument("contract.txt")
	require.NoError(t, err)
	assert.Empty(t, clauses)
}

func TestProcessDocumentMissingFile(t *testing.T) {
	_, err := ProcessDocument(filepath.Join(t.TempDir(), "missing.docx"))
	assert.Error(t, err)
}

func TestProcessDocumentDOCX(t *testing.T) {
	path := writeTestDOCX(t, []string{
		"This Agreement shall survive termination for a period of ten years.",
		"Notices.",
		"Either party may terminate this Agreement with cause upon written notice.",
	})

	clauses, err := ProcessDocument(path)
	require.NoError(t, err)

	// The short "Notices." heading is dropped.
	require.Len(t, clauses, 2)
	assert.Equal(t, "This Agreement shall survive termination for a period of ten years.", clauses[0])
	assert.Equal(t, "Either party may terminate this Agreement with cause upon written notice.", clauses[1])
}

// writeTestDOCX builds a minimal DOCX with one paragraph per input string.
func writeTestDOCX(t *testing.T, paragraphs []string) string {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		require.NoError(t, xml.EscapeText(&body, []byte(p)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write(body.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "contract.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
