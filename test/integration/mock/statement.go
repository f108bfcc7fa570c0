package mock

import (
	"context"
	"fmt"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/domain/entity"
)

// Extractor returns a canned extraction result instead of calling the
// real model provider.
type Extractor struct {
	Statement *entity.ExtractedStatement
	Err       error
}

// IsAvailable reports whether a canned result has been configured.
func (e *Extractor) IsAvailable() bool {
	return e.Statement != nil || e.Err != nil
}

// Extract returns the canned statement or error.
func (e *Extractor) Extract(ctx context.Context, pdf []byte) (*entity.ExtractedStatement, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Statement, nil
}

// FileStore serves statement files from memory.
type FileStore struct {
	Files map[string][]byte
}

// Download returns the stored bytes for the given path.
func (s *FileStore) Download(ctx context.Context, filePath string) ([]byte, error) {
	data, ok := s.Files[filePath]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	return data, nil
}
