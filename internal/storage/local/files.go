package local

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/storage"
)

type LocalFilesStorage struct {
	baseDir   string
	extension string
}

func NewLocalFilesStorage(baseDir, extension string) storage.FilesStorage {
	return &LocalFilesStorage{baseDir: baseDir, extension: extension}
}

// Save replaces the named file atomically, so readers never see a partial
// snapshot.
func (s *LocalFilesStorage) Save(ctx context.Context, name string, r io.Reader) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return err
	}

	finalPath := s.path(name)
	if err := atomic.WriteFile(finalPath, r); err != nil {
		return err
	}
	log.Printf("[%v] %s", colors.Created("saved"), finalPath)

	return nil
}

func (s *LocalFilesStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *LocalFilesStorage) path(name string) string {
	return filepath.Join(s.baseDir, name+s.extension)
}
