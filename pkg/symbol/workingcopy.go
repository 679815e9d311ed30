package symbol

import (
	"sort"

	"gitlab.com/tozd/go/errors"
)

// ✏️ WorkingCopy is a provisional, alphabetically ordered copy of the mapping
// set. Nothing here touches canonical state; pass Mappings() to Table.Commit.
type WorkingCopy struct {
	base     []Mapping
	mappings []Mapping
}

func newWorkingCopy(base []Mapping) *WorkingCopy {
	return &WorkingCopy{
		base:     base,
		mappings: append([]Mapping(nil), base...),
	}
}

// Mappings returns a copy of the working set.
func (w *WorkingCopy) Mappings() []Mapping {
	return append([]Mapping(nil), w.mappings...)
}

// Len returns the number of entries.
func (w *WorkingCopy) Len() int {
	return len(w.mappings)
}

// At returns the entry at index.
func (w *WorkingCopy) At(index int) Mapping {
	return w.mappings[index]
}

// Find reports whether trigger exists and the index where it is, or where it
// would be inserted.
func (w *WorkingCopy) Find(trigger string) (bool, int) {
	i := sort.Search(len(w.mappings), func(i int) bool {
		return w.mappings[i].Trigger >= trigger
	})
	return i < len(w.mappings) && w.mappings[i].Trigger == trigger, i
}

// Add inserts a new mapping in order. Existing triggers are rejected.
func (w *WorkingCopy) Add(trigger, replacement string) (int, error) {
	m, err := NewMapping(trigger, replacement)
	if err != nil {
		return -1, err
	}
	exists, i := w.Find(trigger)
	if exists {
		return i, errors.Errorf("cannot add %q as a key with the same name already exists", trigger)
	}
	w.mappings = append(w.mappings, Mapping{})
	copy(w.mappings[i+1:], w.mappings[i:])
	w.mappings[i] = m
	return i, nil
}

// Replace swaps the replacement of the entry at index.
func (w *WorkingCopy) Replace(index int, replacement string) error {
	if index < 0 || index >= len(w.mappings) {
		return errors.Errorf("no row %d", index)
	}
	if replacement == "" {
		return errors.Errorf("replacement is required")
	}
	w.mappings[index].Replacement = replacement
	return nil
}

// Delete removes the entry at index.
func (w *WorkingCopy) Delete(index int) error {
	if index < 0 || index >= len(w.mappings) {
		return errors.Errorf("no row %d", index)
	}
	w.mappings = append(w.mappings[:index], w.mappings[index+1:]...)
	return nil
}

// ReplaceAll discards the working set in favor of mappings.
func (w *WorkingCopy) ReplaceAll(mappings []Mapping) {
	w.mappings = append([]Mapping(nil), mappings...)
	sortMappings(w.mappings)
}

// ResetToDefaults discards unsaved edits and loads the built-in set.
func (w *WorkingCopy) ResetToDefaults() {
	w.mappings = Defaults()
}

// Dirty reports whether the working set differs from the snapshot it was
// taken from.
func (w *WorkingCopy) Dirty() bool {
	if len(w.base) != len(w.mappings) {
		return true
	}
	for i := range w.base {
		if w.base[i] != w.mappings[i] {
			return true
		}
	}
	return false
}
