package adapter

import (
	"context"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// StatementExtractor turns the raw bytes of a credit card statement PDF
// into structured line items and declared totals. Implementations coerce
// missing numeric fields to zero; one bad line must not reject the
// statement.
type StatementExtractor interface {
	// IsAvailable reports whether the extractor is configured.
	IsAvailable() bool

	// Extract parses the PDF and returns its structured content.
	Extract(ctx context.Context, pdf []byte) (*entity.ExtractedStatement, error)
}

// StatementFileStore retrieves uploaded statement PDFs by their stored path.
type StatementFileStore interface {
	// Download returns the bytes of a stored statement file.
	Download(ctx context.Context, filePath string) ([]byte, error)
}
