package symbol

import (
	"sort"
	"strings"
)

// ResultCode identifies the outcome of a validation
type ResultCode int

const (
	Ok ResultCode = iota
	FormatErrors
	DuplicateKeys
	SubstringConflicts
	PersistFailed
)

// String returns a string representation of ResultCode
func (c ResultCode) String() string {
	switch c {
	case Ok:
		return "ok"
	case FormatErrors:
		return "format_errors"
	case DuplicateKeys:
		return "duplicate_keys"
	case SubstringConflicts:
		return "substring_conflicts"
	case PersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// FormatError is one malformed entry. Index is 1-based so it doubles as a
// line number for bulk imports.
type FormatError struct {
	Index int
	Raw   string
	// Location optionally names the source of the entry (e.g. a file path).
	Location string
}

// Conflict is a pair of triggers where one contains the other.
type Conflict struct {
	Trigger string
	Other   string
}

// 📋 ValidationResult is the structured outcome of Validate and Commit
type ValidationResult struct {
	Code       ResultCode
	Format     []FormatError
	Duplicates []string
	Conflicts  []Conflict
	// Err is set only when Code is PersistFailed.
	Err error
}

// OK reports whether validation passed.
func (r ValidationResult) OK() bool {
	return r.Code == Ok
}

// ValidateOptions tunes Validate
type ValidateOptions struct {
	// IgnoreEmpty skips zero-field entries, keeping indices aligned with lines.
	IgnoreEmpty bool
	// NoSubstring rejects triggers contained in other triggers.
	NoSubstring bool
}

// ✅ Validate checks format first, then duplicate triggers, then (optionally)
// substring conflicts. Every offending entry of the failing stage is reported.
func Validate(candidates [][]string, opts ValidateOptions) ValidationResult {
	if errs := CheckFormat(candidates, opts.IgnoreEmpty); len(errs) > 0 {
		return ValidationResult{Code: FormatErrors, Format: errs}
	}
	if dups := CheckDuplicates(candidates); len(dups) > 0 {
		return ValidationResult{Code: DuplicateKeys, Duplicates: dups}
	}
	if opts.NoSubstring {
		if conflicts := CheckSubstrings(candidates); len(conflicts) > 0 {
			return ValidationResult{Code: SubstringConflicts, Conflicts: conflicts}
		}
	}
	return ValidationResult{Code: Ok}
}

// ValidateMappings validates typed mappings.
func ValidateMappings(mappings []Mapping, opts ValidateOptions) ValidationResult {
	rows := make([][]string, len(mappings))
	for i, m := range mappings {
		rows[i] = m.Fields()
	}
	return Validate(rows, opts)
}

// CheckFormat returns every entry that is not exactly two non-empty fields.
func CheckFormat(candidates [][]string, ignoreEmpty bool) []FormatError {
	var errs []FormatError
	for i, fields := range candidates {
		if ignoreEmpty && len(fields) == 0 {
			continue
		}
		if _, err := NewMapping(fields...); err != nil {
			errs = append(errs, FormatError{Index: i + 1, Raw: strings.Join(fields, " ")})
		}
	}
	return errs
}

// CheckDuplicates returns the sorted set of triggers appearing more than once.
// Empty entries are skipped.
func CheckDuplicates(candidates [][]string) []string {
	seen := make(map[string]int, len(candidates))
	for _, fields := range candidates {
		if len(fields) == 0 {
			continue
		}
		seen[fields[0]]++
	}
	var dups []string
	for k, n := range seen {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)
	return dups
}

// CheckSubstrings returns every pair of distinct triggers where one is a
// substring of the other.
func CheckSubstrings(candidates [][]string) []Conflict {
	var conflicts []Conflict
	for i := range candidates {
		if len(candidates[i]) == 0 {
			continue
		}
		for j := 0; j < i; j++ {
			if len(candidates[j]) == 0 {
				continue
			}
			k1, k2 := candidates[i][0], candidates[j][0]
			if k1 == k2 {
				continue
			}
			if strings.Contains(k1, k2) || strings.Contains(k2, k1) {
				conflicts = append(conflicts, Conflict{Trigger: k1, Other: k2})
			}
		}
	}
	return conflicts
}
