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

// Package engine detects completed triggers in a text buffer and computes
// the span to replace.
package engine

import (
	"unicode"

	"github.com/walteh/insertsym/pkg/symbol"
)

// ⌨️ TriggerKind describes the keystroke that caused an evaluation
type TriggerKind int

const (
	// KeyChar is any non-delimiter character.
	KeyChar TriggerKind = iota
	// KeyDelimiter is a space or enter keystroke. The delimiter may or may
	// not already be present in Text.
	KeyDelimiter
	// Commit is a virtual end-of-input event (e.g. enter in a single-line box)
	// where no delimiter was inserted.
	Commit
)

// String returns a string representation of TriggerKind
func (k TriggerKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyDelimiter:
		return "delimiter"
	case Commit:
		return "commit"
	default:
		return "unknown"
	}
}

// 📸 Event is a snapshot of one edit. Cursor is a rune offset into Text.
type Event struct {
	PrevText string
	Text     string
	Cursor   int
	Trigger  TriggerKind
}

// 🎯 Result describes a replacement to apply. Start and End are rune offsets
// of the span [Start, End) to excise.
type Result struct {
	Matched     bool
	Start       int
	End         int
	Trigger     string
	Replacement string
	Kind        symbol.Kind
	// Caret is where the caret belongs after the replacement is applied,
	// directly after the replacement.
	Caret int
	// Trailing counts runes between End and the cursor, i.e. a delimiter
	// that was already inserted after a delimited trigger.
	Trailing int
}

// NoMatch is the zero Result.
var NoMatch = Result{}

// 🔧 Engine evaluates edits against a match list snapshot. It holds no other
// state and is not safe for concurrent use.
type Engine struct {
	list  []symbol.MatchEntry
	runes [][]rune
}

// 🏭 New creates an engine over list, which must already be ordered as
// symbol.DeriveMatchList orders it.
func New(list []symbol.MatchEntry) *Engine {
	e := &Engine{}
	e.SetMatchList(list)
	return e
}

// SetMatchList swaps the match list snapshot.
func (e *Engine) SetMatchList(list []symbol.MatchEntry) {
	e.list = append([]symbol.MatchEntry(nil), list...)
	e.runes = make([][]rune, len(e.list))
	for i, m := range e.list {
		e.runes[i] = []rune(m.Trigger)
	}
}

// MatchList returns the current snapshot.
func (e *Engine) MatchList() []symbol.MatchEntry {
	return append([]symbol.MatchEntry(nil), e.list...)
}

// 🔍 Evaluate returns the first entry, in match list order, whose trigger ends
// at the anchor position. Only text before the cursor is examined.
func (e *Engine) Evaluate(ev Event) Result {
	text := []rune(ev.Text)
	cursor := clamp(ev.Cursor, 0, len(text))
	if cursor == 0 {
		return NoMatch
	}

	delimiterInserted := ev.Trigger == KeyDelimiter &&
		unicode.IsSpace(text[cursor-1]) &&
		len(text) > len([]rune(ev.PrevText))

	for i, entry := range e.list {
		end := cursor
		if entry.Kind == symbol.Delimited {
			if ev.Trigger == KeyChar {
				continue
			}
			if delimiterInserted {
				end = cursor - 1
			}
		}

		trigger := e.runes[i]
		start := max(end-len(trigger), 0)
		if !equalRunes(text[start:end], trigger) {
			continue
		}
		if entry.Kind == symbol.Delimited && start > 0 && !unicode.IsSpace(text[start-1]) {
			continue
		}

		return Result{
			Matched:     true,
			Start:       start,
			End:         end,
			Trigger:     entry.Trigger,
			Replacement: entry.Replacement,
			Kind:        entry.Kind,
			Caret:       start + len([]rune(entry.Replacement)),
			Trailing:    cursor - end,
		}
	}
	return NoMatch
}

// ✂️ Apply splices r into text and returns the new text and caret. Unmatched
// results return text unchanged with caret -1.
func Apply(text string, r Result) (string, int) {
	if !r.Matched {
		return text, -1
	}
	runes := []rune(text)
	out := make([]rune, 0, len(runes)-(r.End-r.Start)+len(r.Replacement))
	out = append(out, runes[:r.Start]...)
	out = append(out, []rune(r.Replacement)...)
	out = append(out, runes[r.End:]...)
	return string(out), r.Caret
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
