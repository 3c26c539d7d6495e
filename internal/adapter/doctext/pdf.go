// Package doctext extracts plain text from uploaded documents for
// document-grounded quiz generation.
package doctext

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/ledongthuc/pdf"
)

// PDFExtractor implements domain.DocumentTextExtractor for PDF uploads.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

var _ domain.DocumentTextExtractor = (*PDFExtractor)(nil)

// ExtractText reads every page of the PDF and returns the concatenated plain
// text with surrounding whitespace trimmed. Callers decide whether the result
// is long enough to generate from.
func (e *PDFExtractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", domain.NewError(domain.CodeExtraction, "failed to parse PDF document", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewError(domain.CodeExtraction, "failed to extract text from PDF document", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", domain.NewError(domain.CodeExtraction, "failed to read extracted PDF text", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
