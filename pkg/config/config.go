// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/symbol"
	"github.com/walteh/insertsym/pkg/tabular"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultDatabase is used when no database path is configured.
	DefaultDatabase = "insertsym.db"
	// DefaultLogLevel is used when no log level is configured.
	DefaultLogLevel = "info"
)

// 📥 ImportArgs configures bulk imports
type ImportArgs struct {
	Patterns []string `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty"` // Files or doublestar globs
	Format   string   `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty"`       // auto, csv or whitespace
}

// 📚 Config represents the complete configuration
type Config struct {
	Database         string     `json:"database,omitempty" yaml:"database,omitempty" toml:"database,omitempty"`
	Ephemeral        bool       `json:"ephemeral,omitempty" yaml:"ephemeral,omitempty" toml:"ephemeral,omitempty"`
	SpecialTokens    []string   `json:"special_tokens,omitempty" yaml:"special_tokens,omitempty" toml:"special_tokens,omitempty"`
	StrictSubstrings bool       `json:"strict_substrings,omitempty" yaml:"strict_substrings,omitempty" toml:"strict_substrings,omitempty"`
	Import           ImportArgs `json:"import,omitempty" yaml:"import,omitempty" toml:"import,omitempty"`
	LogLevel         string     `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	location string
}

// Default returns a validated config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Database != ":memory:" {
		cfg.Database = filepath.Clean(cfg.Database)
	}

	if cfg.SpecialTokens == nil {
		cfg.SpecialTokens = append([]string(nil), symbol.DefaultSpecialTokens...)
	}
	for i, tok := range cfg.SpecialTokens {
		if strings.TrimSpace(tok) == "" {
			return errors.Errorf("special_tokens[%d] is empty", i)
		}
	}

	if _, err := tabular.ParseFormat(cfg.Import.Format); err != nil {
		return errors.Errorf("import.format: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("log_level: %w", err)
	}

	return nil
}

// ImportFormat returns the parsed import format.
func (cfg *Config) ImportFormat() tabular.Format {
	f, _ := tabular.ParseFormat(cfg.Import.Format)
	return f
}

// Level returns the parsed log level, falling back to info.
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Location is the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	db := cfg.Database
	if cfg.Ephemeral {
		db = "ephemeral"
	}
	return fmt.Sprintf("db=%s tokens=%d strict=%t", db, len(cfg.SpecialTokens), cfg.StrictSubstrings)
}
