package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings *Settings
	Enemies  *EnemyCatalog
}

// Loader loads game configuration using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// BasePath returns the directory the loader was created for
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadSettings loads game.json and fills omitted values with defaults
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg Settings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadEnemyCatalog loads enemies.yaml. A missing file yields the built-in
// catalog.
func (l *Loader) LoadEnemyCatalog() (*EnemyCatalog, error) {
	data, err := fs.ReadFile(l.fsys, "enemies.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultEnemyCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read enemies.yaml: %w", err)
	}
	return ParseEnemyCatalog(data)
}

// LoadAll loads all base configurations (settings, enemy catalog)
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadSettings()
	if err != nil {
		return nil, err
	}

	enemies, err := l.LoadEnemyCatalog()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings: settings,
		Enemies:  enemies,
	}, nil
}
