// Package ingestion turns uploaded résumé documents into plain text for the
// matching pipeline. PDF extraction handles digital PDFs; scanned documents
// would need OCR, which is out of scope.
package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Extract converts an uploaded résumé into cleaned plain text. The format is
// chosen by file extension: ".pdf" goes through PDF text extraction, anything
// else is treated as plain text.
func Extract(filename string, data []byte) (string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return extractPDF(data)
	}
	return Clean(string(data)), nil
}

// ExtractFile reads and extracts résumé text from a file on disk.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return Extract(path, data)
}

// extractPDF pulls the text of every page into a single string.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return Clean(buf.String()), nil
}

// Clean collapses runs of whitespace into single spaces and trims the ends.
// Vectorization is whitespace-insensitive, but cleaned text keeps logs and
// stored résumés readable.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
