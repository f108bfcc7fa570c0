package adapters

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
)

// gcsFileStore downloads uploaded statement PDFs from a Cloud Storage bucket.
type gcsFileStore struct {
	bucket string
}

// NewGCSFileStore creates a file store backed by the given bucket.
func NewGCSFileStore(bucket string) adapter.StatementFileStore {
	return &gcsFileStore{bucket: bucket}
}

func (s *gcsFileStore) Download(ctx context.Context, filePath string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	objectName := strings.TrimPrefix(filePath, "/")
	reader, err := client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", objectName, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", objectName, err)
	}

	return data, nil
}

// localFileStore serves statement PDFs from a directory on disk. Used in
// development and in tests, where no bucket is configured.
type localFileStore struct {
	baseDir string
}

// NewLocalFileStore creates a file store rooted at baseDir.
func NewLocalFileStore(baseDir string) adapter.StatementFileStore {
	return &localFileStore{baseDir: baseDir}
}

func (s *localFileStore) Download(_ context.Context, filePath string) ([]byte, error) {
	clean := filepath.Clean("/" + filePath)
	data, err := os.ReadFile(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("failed to read statement file %s: %w", filePath, err)
	}
	return data, nil
}
