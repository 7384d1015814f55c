// Package extract turns uploaded supplier documents into plain text for the
// bulk INCI import.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize bounds accepted documents.
const MaxUploadSize = 5 << 20

// ErrUnsupported is returned for binary formats that carry no text.
var ErrUnsupported = errors.New("unsupported document type")

// Text extracts plain text from a PDF or text document.
func Text(data []byte, mime string) (string, error) {
	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"):
		text, err := textFromPDF(data)
		if err != nil {
			return "", fmt.Errorf("read pdf: %w", err)
		}
		return text, nil
	case strings.HasPrefix(lower, "text/") || strings.Contains(lower, "csv"):
		return string(data), nil
	case strings.HasPrefix(lower, "image/"):
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mime)
	default:
		return string(data), nil
	}
}

func textFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// MimeTypeFromName guesses the type from a file extension.
func MimeTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}

var inciLabel = regexp.MustCompile(`(?im)^\s*(?:inci(?:\s+list|\s+names?)?|ingredients)\s*[:\-]\s*`)

// INCISection returns the text following an "INCI:" or "Ingredients:" label,
// up to the next blank line. Documents without a label are returned whole.
func INCISection(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	loc := inciLabel.FindStringIndex(text)
	if loc == nil {
		return text
	}
	section := text[loc[1]:]
	if end := strings.Index(section, "\n\n"); end >= 0 {
		section = section[:end]
	}
	return strings.TrimSpace(section)
}
