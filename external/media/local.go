package media

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	internalmedia "github.com/nicksboson/CeriNote/internal/media"
)

// LocalStore keeps audio blobs as flat files in a single directory.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (internalmedia.Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(data []byte, ext string) (string, error) {
	filename := uuid.NewString() + ext
	if err := os.WriteFile(s.Path(filename), data, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return filename, nil
}

func (s *LocalStore) Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return data, nil
}

func (s *LocalStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(s.Path(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("delete audio file: %w", err)
	}
	slog.Info("deleted audio file", "filename", filename)
	return nil
}

func (s *LocalStore) Exists(filename string) bool {
	if filename == "" {
		return false
	}
	_, err := os.Stat(s.Path(filename))
	return err == nil
}

func (s *LocalStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}
