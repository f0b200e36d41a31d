package storage

import (
	"os"
	"path/filepath"

	"aihub/internal/app/errors"
)

// Storage exposes the well-known directories the application reads and
// writes. Every directory is guaranteed to exist before first use.
type Storage interface {
	ModelsDir() string
	DataDir() string
	LogsDir() string
}

// LocalStorage provisions the directory layout under a single root.
type LocalStorage struct {
	modelsDir string
	dataDir   string
	logsDir   string
}

// NewLocalStorage creates the models/data/logs directories under root.
func NewLocalStorage(root string) (*LocalStorage, error) {
	s := &LocalStorage{
		modelsDir: filepath.Join(root, "models"),
		dataDir:   filepath.Join(root, "data"),
		logsDir:   filepath.Join(root, "logs"),
	}

	for _, dir := range []string{s.modelsDir, s.dataDir, s.logsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	return s, nil
}

func (s *LocalStorage) ModelsDir() string { return s.modelsDir }

func (s *LocalStorage) DataDir() string { return s.dataDir }

func (s *LocalStorage) LogsDir() string { return s.logsDir }
