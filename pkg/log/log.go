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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/engine"
	"github.com/walteh/insertsym/pkg/symbol"
)

// 🎨 Display configuration
const (
	rowIndent    = 4  // spaces to indent mapping rows
	triggerWidth = 20 // display columns for the trigger
	replWidth    = 6  // display columns for the replacement
	kindWidth    = 10 // display columns for the kind
)

// 🎯 RowStatus marks how a row changed in a commit
type RowStatus int

const (
	RowUnchanged RowStatus = iota
	RowAdded
	RowUpdated
	RowRemoved
)

// 🎯 MappingRow is one mapping rendered in a listing
type MappingRow struct {
	Trigger     string
	Replacement string
	Kind        symbol.Kind
	Status      RowStatus
}

// 📦 TableOperation is a bulk operation on the symbol table
type TableOperation struct {
	Name   string // import, export, reset, ...
	Source string // file, glob or database the operation reads or writes
	Count  int    // mappings involved
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *TableOperation
	rows      []MappingRow
}

// 🏭 NewWithZerolog creates a logger that writes rows to console and
// forwards structured events to zlog
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// pad fills s with spaces to width display columns.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// 📝 formatMappingRow formats a mapping row for display
func (l *Logger) formatMappingRow(row MappingRow) string {
	var mark rune
	var markColor color.Attribute
	switch row.Status {
	case RowRemoved:
		mark = '✗'
		markColor = color.FgRed
	case RowAdded:
		mark = '✓'
		markColor = color.FgGreen
	case RowUpdated:
		mark = '⟳'
		markColor = color.FgBlue
	default:
		mark = '•'
		markColor = color.FgCyan
	}

	var kindColor color.Attribute
	switch row.Kind {
	case symbol.Immediate:
		kindColor = color.FgYellow
	case symbol.Block:
		kindColor = color.FgMagenta
	default:
		kindColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(markColor).Sprint(string(mark)),
		pad(row.Trigger, triggerWidth),
		pad(row.Replacement, replWidth),
		color.New(kindColor).Sprint(pad(row.Kind.String(), kindWidth)))
}

// 📝 LogMappingRow logs a mapping row
func (l *Logger) LogMappingRow(ctx context.Context, row MappingRow) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = append(l.rows, row)

	fmt.Fprintln(l.console, l.formatMappingRow(row))

	l.zlog.Debug().
		Str("trigger", row.Trigger).
		Str("replacement", row.Replacement).
		Str("kind", row.Kind.String()).
		Int("status", int(row.Status)).
		Msg("mapping row")
}

// 📝 LogMappings logs every mapping as an unchanged row
func (l *Logger) LogMappings(ctx context.Context, mappings []symbol.Mapping, specialTokens []string) {
	for _, m := range mappings {
		l.LogMappingRow(ctx, MappingRow{
			Trigger:     m.Trigger,
			Replacement: m.Replacement,
			Kind:        symbol.Classify(m.Trigger, specialTokens),
		})
	}
}

// 📝 LogDiff logs the rows that differ between before and after
func (l *Logger) LogDiff(ctx context.Context, before, after []symbol.Mapping, specialTokens []string) int {
	old := make(map[string]string, len(before))
	for _, m := range before {
		old[m.Trigger] = m.Replacement
	}
	changed := 0
	for _, m := range after {
		prev, ok := old[m.Trigger]
		delete(old, m.Trigger)
		var status RowStatus
		switch {
		case !ok:
			status = RowAdded
		case prev != m.Replacement:
			status = RowUpdated
		default:
			continue
		}
		changed++
		l.LogMappingRow(ctx, MappingRow{
			Trigger:     m.Trigger,
			Replacement: m.Replacement,
			Kind:        symbol.Classify(m.Trigger, specialTokens),
			Status:      status,
		})
	}
	for _, m := range before {
		if _, gone := old[m.Trigger]; !gone {
			continue
		}
		changed++
		l.LogMappingRow(ctx, MappingRow{
			Trigger:     m.Trigger,
			Replacement: m.Replacement,
			Kind:        symbol.Classify(m.Trigger, specialTokens),
			Status:      RowRemoved,
		})
	}
	return changed
}

// 📝 LogReplacement logs an applied replacement on a surface
func (l *Logger) LogReplacement(ctx context.Context, surface string, res engine.Result) {
	if !res.Matched {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "%s%s %s %s %s\n",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(color.FgMagenta).Sprint("↳"),
		pad(res.Trigger, triggerWidth),
		color.New(color.Faint).Sprint("→"),
		color.New(color.Bold).Sprint(res.Replacement))

	l.zlog.Info().
		Str("surface", surface).
		Str("trigger", res.Trigger).
		Str("replacement", res.Replacement).
		Str("kind", res.Kind.String()).
		Int("start", res.Start).
		Int("end", res.End).
		Msg("replacement applied")
}

// 📝 StartTableOperation starts a new table operation
func (l *Logger) StartTableOperation(ctx context.Context, op TableOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.rows = nil

	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Name,
		color.New(color.FgCyan).Sprint(op.Source))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Name),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d mappings", op.Count))

	l.zlog.Info().
		Str("operation", op.Name).
		Str("source", op.Source).
		Int("count", op.Count).
		Msg("starting table operation")
}

// 📝 EndTableOperation ends the current table operation
func (l *Logger) EndTableOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	l.zlog.Info().
		Str("operation", l.currentOp.Name).
		Int("rows", len(l.rows)).
		Msg("table operation complete")

	l.currentOp = nil
	l.rows = nil
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("insertsym")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 LogChangeSummary reports how many rows an operation changed
func (l *Logger) LogChangeSummary(ctx context.Context, op string, changed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if changed == 0 {
		fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprintf("%s: no changes", op))
	} else {
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprintf("%s: %d rows changed", op, changed))
	}

	l.zlog.Info().Str("operation", op).Int("changed", changed).Msg("table operation summary")
}
