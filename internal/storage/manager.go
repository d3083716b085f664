package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tomz197/bubblesim/internal/config"
	"github.com/tomz197/bubblesim/internal/sim"
)

// Manager handles save/load of the group configuration
type Manager struct {
	basePath string
}

// NewManager creates a manager rooted at basePath
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path of the config file
func (m *Manager) FilePath() string {
	return filepath.Join(m.basePath, config.ConfigFileName)
}

// Exists checks if a config file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.FilePath())
	return err == nil
}

// Save writes the configuration to disk, creating the directory if needed.
// The record is written to a temp file and renamed into place.
func (m *Manager) Save(cfg sim.Config) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(m.basePath, config.ConfigFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(Encode(cfg)); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmp.Name(), m.FilePath()); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Load reads the configuration from disk
func (m *Manager) Load() (sim.Config, error) {
	data, err := os.ReadFile(m.FilePath())
	if errors.Is(err, fs.ErrNotExist) {
		return sim.Config{}, ErrNotFound
	}
	if err != nil {
		return sim.Config{}, fmt.Errorf("read config: %w", err)
	}
	return Decode(data)
}

// LoadOrDefault returns the stored configuration, or the defaults when the
// file is missing or unreadable. The error is non-nil only for the latter.
func (m *Manager) LoadOrDefault() (sim.Config, error) {
	cfg, err := m.Load()
	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, ErrNotFound):
		return sim.DefaultConfig(), nil
	default:
		return sim.DefaultConfig(), err
	}
}
