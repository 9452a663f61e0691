// Package config loads the code editor settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultTabSize           = 4
	DefaultKeyRepeatDelay    = 300
	DefaultKeyRepeatInterval = 30

	DefaultStartText = "This is one line\nThis is another line\n\nBlank plus another."
)

// ErrInvalidSettings wraps every Validate failure.
var ErrInvalidSettings = errors.New("config: invalid settings")

type Settings struct {
	Editor EditorSettings `toml:"code_editor"`
}

// EditorSettings mirrors the [code_editor] table. Repeat values are in
// milliseconds.
type EditorSettings struct {
	TabSize           int    `toml:"tab_size"`
	KeyRepeatDelay    int    `toml:"key_repeat_delay"`
	KeyRepeatInterval int    `toml:"key_repeat_interval"`
	ShowLineNumbers   bool   `toml:"show_line_numbers"`
	StartText         string `toml:"start_text"`
}

func (e EditorSettings) RepeatDelay() time.Duration {
	return time.Duration(e.KeyRepeatDelay) * time.Millisecond
}

func (e EditorSettings) RepeatInterval() time.Duration {
	return time.Duration(e.KeyRepeatInterval) * time.Millisecond
}

func Default() Settings {
	return Settings{Editor: EditorSettings{
		TabSize:           DefaultTabSize,
		KeyRepeatDelay:    DefaultKeyRepeatDelay,
		KeyRepeatInterval: DefaultKeyRepeatInterval,
		ShowLineNumbers:   true,
		StartText:         DefaultStartText,
	}}
}

// Dir returns the settings directory, honoring JACKIT_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv("JACKIT_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "jackit")
	}
	return ".jackit"
}

// DefaultPath is the settings file used when no path is given.
func DefaultPath() string { return filepath.Join(Dir(), "settings.toml") }

// Load reads settings from path. A missing file yields Default; keys absent
// from the file keep their default values.
func Load(path string) (Settings, error) {
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %q: %w", path, err)
	}

	settings, err := Decode(data)
	if err != nil {
		return Settings{}, fmt.Errorf("parse settings %q: %w", path, err)
	}
	return settings, nil
}

// Decode parses TOML over the defaults and validates the result.
func Decode(data []byte) (Settings, error) {
	settings := Default()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	e := s.Editor
	switch {
	case e.TabSize < 1:
		return fmt.Errorf("tab_size %d: %w", e.TabSize, ErrInvalidSettings)
	case e.KeyRepeatDelay < 0:
		return fmt.Errorf("key_repeat_delay %d: %w", e.KeyRepeatDelay, ErrInvalidSettings)
	case e.KeyRepeatInterval < 0:
		return fmt.Errorf("key_repeat_interval %d: %w", e.KeyRepeatInterval, ErrInvalidSettings)
	}
	return nil
}

// Save writes settings as TOML to path, creating its directory.
func Save(settings Settings, path string) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure settings directory: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %q: %w", path, err)
	}
	return nil
}

// Readers never observe a partially written file.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jackit-settings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
