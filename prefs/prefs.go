// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package prefs persists the player preferences between runs.
package prefs

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	keyAutoplay = "autoplay"
	keyVolume   = "volume"
	keyCurrent  = "currentVideoId"
)

type Prefs struct {
	Autoplay       bool    `json:"autoplay"`
	Volume         float64 `json:"volume"`
	CurrentVideoId string  `json:"currentVideoId,omitempty"`
}

func Defaults() Prefs {
	return Prefs{
		Autoplay: true,
		Volume:   1,
	}
}

type Store struct {
	fs   afero.Fs
	path string
}

func NewStore(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, path: path}
}

// DefaultPath is the state file location used when none is configured.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "canvasplay", "state.json")
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored preferences. Any read or parse failure yields the
// defaults together with the error, which callers may only log.
func (s *Store) Load() (Prefs, error) {
	v := viper.New()
	v.SetFs(s.fs)
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	def := Defaults()
	v.SetDefault(keyAutoplay, def.Autoplay)
	v.SetDefault(keyVolume, def.Volume)

	if err := v.ReadInConfig(); err != nil {
		return def, fmt.Errorf("[Prefs] failed to read %s: %w", s.path, err)
	}

	// a field that does not parse keeps its default, the others still load
	p := def
	if autoplay, err := cast.ToBoolE(v.Get(keyAutoplay)); err == nil {
		p.Autoplay = autoplay
	}
	if volume, err := cast.ToFloat64E(v.Get(keyVolume)); err == nil && !math.IsNaN(volume) {
		p.Volume = math.Max(0, math.Min(1, volume))
	}
	if current, err := cast.ToStringE(v.Get(keyCurrent)); err == nil {
		p.CurrentVideoId = current
	}
	return p, nil
}

// Save writes p as JSON. Keys keep their case, which viper would fold.
func (s *Store) Save(p Prefs) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("[Prefs] failed to create %s: %w", dir, err)
		}
	}

	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("[Prefs] failed to marshal: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, body, 0o644); err != nil {
		return fmt.Errorf("[Prefs] failed to write %s: %w", s.path, err)
	}
	return nil
}
