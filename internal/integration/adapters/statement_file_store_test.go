package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFileStoreDownload(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "statements"), 0o755); err != nil {
		t.Fatalf("failed to create test dir: %v", err)
	}
	content := []byte("%PDF-1.7 test")
	if err := os.WriteFile(filepath.Join(dir, "statements", "resumen.pdf"), content, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	store := NewLocalFileStore(dir)

	t.Run("reads an existing file", func(t *testing.T) {
		data, err := store.Download(context.Background(), "statements/resumen.pdf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != string(content) {
			t.Errorf("unexpected file content: %q", data)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		if _, err := store.Download(context.Background(), "statements/otro.pdf"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("path traversal stays inside the base dir", func(t *testing.T) {
		if _, err := store.Download(context.Background(), "../resumen.pdf"); err == nil {
			t.Error("expected error for path outside the base dir")
		}
	})
}
