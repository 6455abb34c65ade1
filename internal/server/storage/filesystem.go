package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrNotExist is returned when a stored name has no file behind it.
var ErrNotExist = errors.New("file does not exist in storage")

// FileInfo is the metadata recorded for one stored file. ModTime stands in
// for creation time: files here are write-once, and portable stat carries
// no birth time.
type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Store defines the interface for file storage backends.
// This allows swapping filesystem for S3 or other backends later.
type Store interface {
	EnsureDir() error
	Save(storedName string, data io.Reader) (int64, error)
	List() ([]FileInfo, error)
	Path(storedName string) (string, error)
	Delete(storedName string) error
}

// FileSystemStore keeps uploaded files in a single flat local directory.
// The directory IS the index: there is no manifest and no in-memory state,
// so every operation re-reads disk.
type FileSystemStore struct {
	basePath string
}

// NewFileSystemStore creates a new filesystem storage backend.
func NewFileSystemStore(basePath string) *FileSystemStore {
	return &FileSystemStore{basePath: basePath}
}

// EnsureDir creates the storage directory if it doesn't exist.
func (fs *FileSystemStore) EnsureDir() error {
	if err := os.MkdirAll(fs.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", fs.basePath, err)
	}
	return nil
}

// Save writes data to a file named storedName inside the storage directory.
// Returns the number of bytes written.
func (fs *FileSystemStore) Save(storedName string, data io.Reader) (int64, error) {
	filePath := filepath.Join(fs.basePath, storedName)

	file, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	n, err := io.Copy(file, data)
	if err != nil {
		// Clean up partial file on error
		os.Remove(filePath)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	return n, nil
}

// List returns metadata for every regular file in the storage directory,
// in directory enumeration order. Subdirectories are skipped; the
// namespace is flat.
func (fs *FileSystemStore) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(fs.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// Path returns the on-disk path for a stored name after confirming the
// file exists. Names that would resolve outside the storage directory —
// or to the directory itself, like "." — are treated as absent.
func (fs *FileSystemStore) Path(storedName string) (string, error) {
	if storedName == "" || storedName == "." || storedName == ".." ||
		filepath.Base(storedName) != storedName {
		return "", ErrNotExist
	}

	filePath := filepath.Join(fs.basePath, storedName)
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotExist
		}
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return "", ErrNotExist
	}
	return filePath, nil
}

// Delete removes a stored file. The existence check and the removal are
// not atomic; a concurrent delete of the same name can win the race.
func (fs *FileSystemStore) Delete(storedName string) error {
	filePath, err := fs.Path(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", storedName, err)
	}
	return nil
}
