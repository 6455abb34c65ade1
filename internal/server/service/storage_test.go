package service

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"relaybox/internal/server/storage"
)

func newTestStorageService(t *testing.T) *StorageService {
	t.Helper()
	store := storage.NewFileSystemStore(t.TempDir())
	if err := store.EnsureDir(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewStorageService(store, storage.TimestampNamer{})
}

func TestStorageService_Upload(t *testing.T) {
	t.Run("returns metadata for stored file", func(t *testing.T) {
		svc := newTestStorageService(t)

		content := []byte("hello upload")
		result, err := svc.Upload("report.pdf", bytes.NewReader(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.OriginalName != "report.pdf" {
			t.Errorf("expected original name preserved, got %q", result.OriginalName)
		}
		if result.Size != int64(len(content)) {
			t.Errorf("expected size %d, got %d", len(content), result.Size)
		}
		if result.Filename == "report.pdf" {
			t.Error("stored name should differ from original name")
		}
		if _, err := time.Parse(time.RFC3339, result.UploadedAt); err != nil {
			t.Errorf("uploadedAt %q is not RFC 3339: %v", result.UploadedAt, err)
		}
	})

	t.Run("upload then list round-trip", func(t *testing.T) {
		svc := newTestStorageService(t)

		content := bytes.Repeat([]byte("a"), 5000)
		result, err := svc.Upload("report.pdf", bytes.NewReader(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := svc.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Filename != result.Filename {
			t.Errorf("expected listed name %q, got %q", result.Filename, entries[0].Filename)
		}
		if entries[0].Size != 5000 {
			t.Errorf("expected listed size 5000, got %d", entries[0].Size)
		}
	})
}

func TestStorageService_List(t *testing.T) {
	t.Run("empty storage is an empty listing", func(t *testing.T) {
		svc := newTestStorageService(t)

		entries, err := svc.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty listing, got %d entries", len(entries))
		}
	})
}

func TestStorageService_DownloadPath(t *testing.T) {
	t.Run("resolves uploaded file to readable path", func(t *testing.T) {
		svc := newTestStorageService(t)

		content := []byte("download me")
		result, err := svc.Upload("data.bin", bytes.NewReader(content))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path, err := svc.DownloadPath(result.Filename)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read resolved path: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Error("downloaded bytes differ from uploaded bytes")
		}
	})

	t.Run("missing file maps to ErrNotFound", func(t *testing.T) {
		svc := newTestStorageService(t)

		if _, err := svc.DownloadPath("nope.txt"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStorageService_Delete(t *testing.T) {
	t.Run("upload, delete, repeat delete", func(t *testing.T) {
		svc := newTestStorageService(t)

		result, err := svc.Upload("victim.txt", bytes.NewReader([]byte("x")))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := svc.Delete(result.Filename); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := svc.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected deleted file gone from listing, got %d entries", len(entries))
		}

		if err := svc.Delete(result.Filename); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
		}
	})
}
