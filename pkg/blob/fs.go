package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	apperr "github.com/medisys/clinical-api/pkg/errors"
)

type fsStore struct {
	dir string
}

// NewFSStore returns a Store backed by a directory on local disk, creating
// the directory if needed.
func NewFSStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &fsStore{dir: dir}, nil
}

func (s *fsStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	name := uuid.New().String() + filepath.Ext(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", apperr.Unavailable(err)
	}
	return name, nil
}

func (s *fsStore) Open(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("file", name)
		}
		return nil, apperr.Unavailable(err)
	}
	return data, nil
}

func (s *fsStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return apperr.Unavailable(err)
	}
	return nil
}
