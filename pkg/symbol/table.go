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

package symbol

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrEmpty is returned by Load when persistence yielded no rows.
var ErrEmpty = errors.Base("no persisted mappings")

// 🚫 InvalidError is returned by Load when persisted rows are malformed
type InvalidError struct {
	Indices []int // 1-based row indices
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid persisted mappings at rows %v", e.Indices)
}

// 💾 Store is the persistence collaborator the table reads from and writes to
type Store interface {
	TableExists(ctx context.Context) (bool, error)
	CreateTable(ctx context.Context) error
	ReadAllRows(ctx context.Context) ([]Row, error)
	// ReplaceAll swaps the persisted rows for rows in a single transaction.
	ReplaceAll(ctx context.Context, rows []Row) error
}

// Option configures a Table
type Option func(*Table)

// WithSpecialTokens overrides the whitelist of immediately-firing tokens.
func WithSpecialTokens(tokens []string) Option {
	return func(t *Table) {
		t.specialTokens = append([]string(nil), tokens...)
	}
}

// WithNoSubstring enables the legacy rule rejecting triggers that contain
// other triggers.
func WithNoSubstring(enabled bool) Option {
	return func(t *Table) {
		t.noSubstring = enabled
	}
}

// 📚 Table is the canonical, persisted mapping set
type Table struct {
	store         Store
	onChange      func()
	specialTokens []string
	noSubstring   bool

	symbols []Mapping
}

// 🏭 NewTable creates a table backed by store. onChange is invoked after every
// successful Commit and may be nil.
func NewTable(store Store, onChange func(), opts ...Option) (*Table, error) {
	if store == nil {
		return nil, errors.Errorf("store is required")
	}
	if onChange == nil {
		onChange = func() {}
	}
	t := &Table{
		store:         store,
		onChange:      onChange,
		specialTokens: DefaultSpecialTokens,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// 🚀 Open loads the persisted mappings, creating the backing table if needed.
// Any load failure falls back to the defaults, which are then persisted.
// The returned error reports storage failures only; the table is usable
// with the defaults even when it is non-nil.
func (t *Table) Open(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	exists, err := t.store.TableExists(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("checking symbol table")
	}

	loaded := false
	if err == nil && !exists {
		if err := t.store.CreateTable(ctx); err != nil {
			t.symbols = Defaults()
			return errors.Errorf("creating symbol table: %w", err)
		}
	} else if err == nil {
		rows, err := t.store.ReadAllRows(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("reading persisted mappings")
		} else if err := t.Load(rows); err != nil {
			logger.Warn().Err(err).Msg("persisted mappings rejected")
		} else {
			loaded = true
		}
	}

	if loaded {
		logger.Debug().Int("count", len(t.symbols)).Msg("loaded persisted mappings")
		return nil
	}

	logger.Info().Msg("falling back to default mappings")
	t.symbols = Defaults()
	if err := t.store.ReplaceAll(ctx, rowsOf(t.symbols)); err != nil {
		return errors.Errorf("persisting default mappings: %w", err)
	}
	return nil
}

// 📥 Load replaces the canonical set with rows. It neither persists nor notifies.
func (t *Table) Load(rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}

	var bad []int
	seen := make(map[string]int, len(rows))
	for _, r := range rows {
		seen[r.Key]++
	}
	mappings := make([]Mapping, 0, len(rows))
	for i, r := range rows {
		m, err := NewMapping(r.Key, r.Value)
		if err != nil || seen[r.Key] > 1 {
			bad = append(bad, i+1)
			continue
		}
		mappings = append(mappings, m)
	}
	if len(bad) > 0 {
		return errors.WithStack(&InvalidError{Indices: bad})
	}
	if t.noSubstring {
		if res := ValidateMappings(mappings, ValidateOptions{NoSubstring: true}); !res.OK() {
			return errors.Errorf("persisted mappings conflict: %d pairs", len(res.Conflicts))
		}
	}

	sortMappings(mappings)
	t.symbols = mappings
	return nil
}

// All returns a copy of the canonical set sorted by trigger.
func (t *Table) All() []Mapping {
	return append([]Mapping(nil), t.symbols...)
}

// Defaults returns the built-in set sorted by trigger.
func (t *Table) Defaults() []Mapping {
	return Defaults()
}

// Validate checks candidates with the table's configured rules.
func (t *Table) Validate(candidates [][]string, ignoreEmpty bool) ValidationResult {
	return Validate(candidates, ValidateOptions{IgnoreEmpty: ignoreEmpty, NoSubstring: t.noSubstring})
}

// 💾 Commit validates candidates and, if valid, persists them, makes them
// canonical and notifies exactly once. Nothing changes on failure.
func (t *Table) Commit(ctx context.Context, candidates []Mapping) ValidationResult {
	logger := zerolog.Ctx(ctx)

	res := ValidateMappings(candidates, ValidateOptions{NoSubstring: t.noSubstring})
	if !res.OK() {
		logger.Debug().Str("code", res.Code.String()).Msg("commit rejected")
		return res
	}

	next := append([]Mapping(nil), candidates...)
	sortMappings(next)

	if err := t.store.ReplaceAll(ctx, rowsOf(next)); err != nil {
		logger.Error().Err(err).Msg("persisting mappings")
		return ValidationResult{Code: PersistFailed, Err: errors.Errorf("persisting mappings: %w", err)}
	}

	t.symbols = next
	logger.Info().Int("count", len(next)).Msg("committed mappings")
	t.onChange()
	return res
}

// Reset commits the default set.
func (t *Table) Reset(ctx context.Context) ValidationResult {
	return t.Commit(ctx, Defaults())
}

// MatchList derives the engine's match list from the canonical set.
func (t *Table) MatchList() []MatchEntry {
	return DeriveMatchList(t.symbols, t.specialTokens)
}

// WireFormat returns the double-encoded match list for host text surfaces.
func (t *Table) WireFormat() (string, error) {
	return EncodeWireFormat(t.MatchList())
}

// WorkingCopy returns a caller-owned copy of the canonical set for editing.
func (t *Table) WorkingCopy() *WorkingCopy {
	return newWorkingCopy(t.All())
}

func rowsOf(mappings []Mapping) []Row {
	rows := make([]Row, len(mappings))
	for i, m := range mappings {
		rows[i] = m.Row()
	}
	return rows
}
