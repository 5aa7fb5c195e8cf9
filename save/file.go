package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the save file inside the configured directory
const FileName = "savegame.yaml"

// FileStore keeps the snapshot as a YAML document, replaced atomically on every save
type FileStore struct {
	path string
}

// NewFileStore creates dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("save: create dir %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the save file location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(_ context.Context, snap *Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("save: encode snapshot: %w", err)
	}

	// renameio handles temp file creation, fsync and rename
	pending, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0o600))
	if err != nil {
		return fmt.Errorf("save: create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("save: write snapshot: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("save: replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (*Snapshot, error) {
	// #nosec G304 -- path is derived from configuration
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("save: read %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("save: decode %s: %w", s.path, err)
	}
	return &snap, nil
}

func (s *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("save: delete %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
