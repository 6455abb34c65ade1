package service

import (
	"errors"
	"io"
	"time"

	"relaybox/internal/server/storage"
)

// Sentinel errors for the service layer.
var (
	ErrNotFound      = errors.New("file not found")
	ErrNoFile        = errors.New("no file uploaded")
	ErrMissingFields = errors.New("missing required mail fields")
)

// UploadResult is the payload returned for a successful upload.
// UploadedAt is the wall clock at response time, not disk metadata.
type UploadResult struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	UploadedAt   string `json:"uploadedAt"`
}

// FileEntry is one row in a storage listing. UploadedAt comes from
// filesystem metadata at list time.
type FileEntry struct {
	Filename   string `json:"filename"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

// StorageService owns the upload, list, delete and download flows against
// a storage backend. It holds no state of its own; the backend directory
// is the single source of truth.
type StorageService struct {
	store storage.Store
	namer storage.Namer
}

// NewStorageService creates a storage service over the given backend and
// naming scheme.
func NewStorageService(store storage.Store, namer storage.Namer) *StorageService {
	return &StorageService{store: store, namer: namer}
}

// Upload persists one uploaded file under a freshly generated stored name
// and reports its metadata.
func (s *StorageService) Upload(originalName string, data io.Reader) (*UploadResult, error) {
	storedName := s.namer.Name(originalName)

	size, err := s.store.Save(storedName, data)
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		Filename:     storedName,
		OriginalName: originalName,
		Size:         size,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// List enumerates the storage directory. An empty directory is a valid,
// empty listing.
func (s *StorageService) List() ([]FileEntry, error) {
	infos, err := s.store.List()
	if err != nil {
		return nil, err
	}

	entries := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, FileEntry{
			Filename:   info.Name,
			Size:       info.Size,
			UploadedAt: info.ModTime.UTC().Format(time.RFC3339),
		})
	}
	return entries, nil
}

// DownloadPath resolves a stored name to an on-disk path for streaming.
func (s *StorageService) DownloadPath(storedName string) (string, error) {
	path, err := s.store.Path(storedName)
	if errors.Is(err, storage.ErrNotExist) {
		return "", ErrNotFound
	}
	return path, err
}

// Delete removes a stored file, confirming existence first. The check and
// the removal are not atomic.
func (s *StorageService) Delete(storedName string) error {
	if _, err := s.store.Path(storedName); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	if err := s.store.Delete(storedName); err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
