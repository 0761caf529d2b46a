package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/randomtoy/klondike-go/internal/domain"
	"github.com/randomtoy/klondike-go/internal/ports"
)

// fileDoc is the on-disk YAML shape.
type fileDoc struct {
	DrawCount int `yaml:"draw_count"`
}

// FileStore keeps preferences in a small YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) DrawCount(_ context.Context) (domain.DrawCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ports.ErrNoPreference
	}
	if err != nil {
		return 0, fmt.Errorf("read preferences %s: %w", s.path, err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("parse preferences %s: %w", s.path, err)
	}
	if doc.DrawCount == 0 {
		return 0, ports.ErrNoPreference
	}
	n := domain.DrawCount(doc.DrawCount)
	if !n.Valid() {
		return 0, fmt.Errorf("preferences %s: %w: %d", s.path, domain.ErrInvalidDrawCount, doc.DrawCount)
	}
	return n, nil
}

// SetDrawCount writes the file atomically via a temp file and rename.
func (s *FileStore) SetDrawCount(_ context.Context, n domain.DrawCount) error {
	if !n.Valid() {
		return domain.ErrInvalidDrawCount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := yaml.Marshal(fileDoc{DrawCount: int(n)})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
