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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/insertsym/pkg/symbol"
	"github.com/walteh/insertsym/pkg/tabular"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: "config.yaml",
			config: `
database: data/symbols.db
special_tokens: ["->", "~>"]
strict_substrings: true
import:
  patterns:
    - "symbols/**/*.csv"
  format: csv
log_level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Clean("data/symbols.db"), cfg.Database, "database should match")
				assert.Equal(t, []string{"->", "~>"}, cfg.SpecialTokens, "special tokens should match")
				assert.True(t, cfg.StrictSubstrings, "strict substrings should be true")
				assert.Equal(t, []string{"symbols/**/*.csv"}, cfg.Import.Patterns, "patterns should match")
				assert.Equal(t, tabular.FormatCSV, cfg.ImportFormat(), "format should match")
				assert.Equal(t, zerolog.DebugLevel, cfg.Level(), "level should match")
			},
		},
		{
			name:     "minimal_yaml",
			filename: "config.yml",
			config:   "ephemeral: true\n",
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Ephemeral, "ephemeral should be true")
				assert.Equal(t, DefaultDatabase, cfg.Database, "database should have default value")
				assert.Equal(t, symbol.DefaultSpecialTokens, cfg.SpecialTokens, "special tokens should have default value")
				assert.Equal(t, zerolog.InfoLevel, cfg.Level(), "level should have default value")
				assert.Equal(t, tabular.FormatAuto, cfg.ImportFormat(), "format should have default value")
			},
		},
		{
			name:     "valid_json",
			filename: "config.json",
			config:   `{"database": ":memory:", "import": {"patterns": ["a.txt"], "format": "whitespace"}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ":memory:", cfg.Database)
				assert.Equal(t, tabular.FormatWhitespace, cfg.ImportFormat())
			},
		},
		{
			name:     "valid_toml",
			filename: "config.toml",
			config: `
database = "symbols.db"
special_tokens = ["=>"]

[import]
patterns = ["*.csv"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "symbols.db", cfg.Database)
				assert.Equal(t, []string{"=>"}, cfg.SpecialTokens)
				assert.Equal(t, []string{"*.csv"}, cfg.Import.Patterns)
			},
		},
		{
			name:     "valid_hcl",
			filename: "config.hcl",
			config: `
database = "symbols.db"
special_tokens = default_special_tokens
strict_substrings = true

import {
  patterns = ["symbols/*.txt"]
  format   = "txt"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "symbols.db", cfg.Database)
				assert.Equal(t, symbol.DefaultSpecialTokens, cfg.SpecialTokens)
				assert.True(t, cfg.StrictSubstrings)
				assert.Equal(t, []string{"symbols/*.txt"}, cfg.Import.Patterns)
				assert.Equal(t, tabular.FormatWhitespace, cfg.ImportFormat())
			},
		},
		{
			name:     "rc_file_yaml",
			filename: RCFile,
			config:   "database: rc.db\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "rc.db", cfg.Database)
			},
		},
		{
			name:     "rc_file_hcl",
			filename: RCFile,
			config:   "database = \"rc.db\"\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "rc.db", cfg.Database)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    "config.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "config.json",
			config:      `{"provider": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_toml_field",
			filename:    "config.toml",
			config:      "colour = true\n",
			wantErr:     true,
			errContains: "parsing TOML",
		},
		{
			name:        "bad_import_format",
			filename:    "config.yaml",
			config:      "import:\n  format: xml\n",
			wantErr:     true,
			errContains: "import.format",
		},
		{
			name:        "bad_log_level",
			filename:    "config.yaml",
			config:      "log_level: loud\n",
			wantErr:     true,
			errContains: "log_level",
		},
		{
			name:        "empty_special_token",
			filename:    "config.json",
			config:      `{"special_tokens": ["->", " "]}`,
			wantErr:     true,
			errContains: "special_tokens[1] is empty",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.ini",
			config:      "database=x\n",
			wantErr:     true,
			errContains: "unsupported file extension",
		},
	}

	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, configPath, cfg.Location(), "location should be recorded")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadOrDefault(ctx, missing, false)
	require.NoError(t, err, "optional missing file falls back to defaults")
	assert.Equal(t, DefaultDatabase, cfg.Database)

	_, err = LoadOrDefault(ctx, missing, true)
	assert.Error(t, err, "required missing file is an error")

	cfg, err = LoadOrDefault(ctx, "", true)
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "default_config",
			cfg:  Default(),
			want: "db=insertsym.db tokens=4 strict=false",
		},
		{
			name: "ephemeral_config",
			cfg:  &Config{Ephemeral: true, SpecialTokens: []string{"->"}, StrictSubstrings: true},
			want: "db=ephemeral tokens=1 strict=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.String()
			assert.Equal(t, tt.want, got, "String() should match")
		})
	}
}
