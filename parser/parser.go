// Package parser extracts text from contract documents and segments it into
// clauses suitable for risk analysis.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Fragments at or below this many characters are dropped during
// segmentation; they are headings, numbering artifacts or page furniture.
const minClauseLen = 30

var (
	newlineRe = regexp.MustCompile(`\n+`)
	spacesRe  = regexp.MustCompile(`\s{2,}`)
)

// ProcessDocument extracts text from a PDF or DOCX file and returns the
// ordered clause list. Unsupported extensions yield an empty list and no
// error; extraction failures are returned to the caller.
func ProcessDocument(filePath string) ([]string, error) {
	var raw string
	var err error

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		raw, err = extractTextFromPDF(filePath)
	case ".docx":
		raw, err = extractTextFromDOCX(filePath)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return SegmentClauses(CleanText(raw)), nil
}

func extractTextFromPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractTextFromDOCX(filePath string) (string, error) {
	rc, err := zip.OpenReader(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer rc.Close()

	for _, file := range rc.File {
		if file.Name != "word/document.xml" {
			continue
		}
		doc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document.xml: %w", err)
		}
		defer doc.Close()
		return parseDocumentXML(doc)
	}
	return "", fmt.Errorf("docx is missing word/document.xml")
}

// parseDocumentXML pulls the text runs (w:t) out of a DOCX body, inserting a
// newline at each paragraph boundary.
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}

// CleanText collapses newlines and runs of whitespace into single spaces.
func CleanText(text string) string {
	text = newlineRe.ReplaceAllString(text, " ")
	text = spacesRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Common abbreviations that end with a period mid-sentence.
var abbreviations = map[string]bool{
	"no": true, "inc": true, "ltd": true, "co": true, "corp": true,
	"sec": true, "art": true, "mr": true, "mrs": true, "ms": true,
	"dr": true, "st": true, "vs": true, "etc": true, "approx": true,
}

// SegmentClauses splits cleaned text on sentence boundaries and keeps
// segments longer than the minimum clause length.
func SegmentClauses(text string) []string {
	clauses := make([]string, 0)
	runes := []rune(text)
	var cur strings.Builder

	flush := func() {
		clause := strings.TrimSpace(cur.String())
		cur.Reset()
		if utf8.RuneCountInString(clause) > minClauseLen {
			clauses = append(clauses, clause)
		}
	}

	for i, r := range runes {
		cur.WriteRune(r)
		if r != '.' && r != '!' && r != '?' && r != ';' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			// Mid-token terminator, e.g. "4.5" or "e.g.," — not a boundary.
			continue
		}
		if r == '.' && isAbbreviation(cur.String()) {
			continue
		}
		flush()
	}
	flush()

	return clauses
}

// isAbbreviation reports whether the text ends in a known abbreviation
// followed by its period.
func isAbbreviation(text string) bool {
	trimmed := strings.TrimSuffix(text, ".")
	idx := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	word := strings.ToLower(trimmed[idx+1:])
	return abbreviations[word]
}
