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
	"sort"
	"strings"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Mapping is a single trigger -> replacement pair
type Mapping struct {
	Trigger     string `json:"key"`
	Replacement string `json:"val"`
}

// 📦 Row is an untyped (key, value) row as read from persistence
type Row struct {
	Key   string
	Value string
}

// 🏭 NewMapping builds a Mapping from raw fields, rejecting anything that is
// not exactly two non-empty fields
func NewMapping(fields ...string) (Mapping, error) {
	if len(fields) != 2 {
		return Mapping{}, errors.Errorf("expected 2 fields, got %d", len(fields))
	}
	if fields[0] == "" {
		return Mapping{}, errors.Errorf("trigger is required")
	}
	if fields[1] == "" {
		return Mapping{}, errors.Errorf("replacement is required for %q", fields[0])
	}
	return Mapping{Trigger: fields[0], Replacement: fields[1]}, nil
}

// Fields returns the mapping as a two-field row.
func (m Mapping) Fields() []string {
	return []string{m.Trigger, m.Replacement}
}

// Row converts the mapping into a persistence row.
func (m Mapping) Row() Row {
	return Row{Key: m.Trigger, Value: m.Replacement}
}

// 🏷️ Kind classifies when a trigger fires
type Kind int

const (
	// Delimited triggers fire on a whitespace delimiter after a word boundary.
	Delimited Kind = iota
	// Immediate triggers fire as soon as their last character is typed.
	Immediate
	// Block triggers behave like Immediate but mark block-level replacements.
	Block
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case Delimited:
		return "delimited"
	case Immediate:
		return "immediate"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// FiresImmediately reports whether the kind fires without a delimiter.
func (k Kind) FiresImmediately() bool {
	return k == Immediate || k == Block
}

// DefaultSpecialTokens are non colon-delimited triggers that fire immediately.
var DefaultSpecialTokens = []string{"->", "<-", "=>", "<="}

// 🔍 Classify computes the Kind of a trigger. Prefix and suffix may overlap,
// so "::" is a Block and ":" is Immediate.
func Classify(trigger string, specialTokens []string) Kind {
	if strings.HasPrefix(trigger, "::") && strings.HasSuffix(trigger, "::") {
		return Block
	}
	if strings.HasPrefix(trigger, ":") && strings.HasSuffix(trigger, ":") {
		return Immediate
	}
	for _, tok := range specialTokens {
		if tok == trigger {
			return Immediate
		}
	}
	return Delimited
}

// 🎯 MatchEntry is a derived, read-only view of a mapping used for matching
type MatchEntry struct {
	Trigger     string `json:"key"`
	Replacement string `json:"val"`
	Kind        Kind   `json:"f"`
}

// DeriveMatchList classifies mappings and orders them longest trigger first,
// ties broken alphabetically.
func DeriveMatchList(mappings []Mapping, specialTokens []string) []MatchEntry {
	out := make([]MatchEntry, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, MatchEntry{
			Trigger:     m.Trigger,
			Replacement: m.Replacement,
			Kind:        Classify(m.Trigger, specialTokens),
		})
	}
	SortMatchList(out)
	return out
}

// SortMatchList sorts entries by trigger rune length descending, then by trigger.
func SortMatchList(entries []MatchEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		li := utf8.RuneCountInString(entries[i].Trigger)
		lj := utf8.RuneCountInString(entries[j].Trigger)
		if li != lj {
			return li > lj
		}
		return entries[i].Trigger < entries[j].Trigger
	})
}

func sortMappings(mappings []Mapping) {
	sort.SliceStable(mappings, func(i, j int) bool {
		return mappings[i].Trigger < mappings[j].Trigger
	})
}
