package symbol

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

type fakeStore struct {
	exists     bool
	rows       []Row
	writes     int
	readErr    error
	replaceErr error
}

func (s *fakeStore) TableExists(ctx context.Context) (bool, error) { return s.exists, nil }

func (s *fakeStore) CreateTable(ctx context.Context) error {
	s.exists = true
	return nil
}

func (s *fakeStore) ReadAllRows(ctx context.Context) ([]Row, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return append([]Row(nil), s.rows...), nil
}

func (s *fakeStore) ReplaceAll(ctx context.Context, rows []Row) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.writes++
	s.rows = append([]Row(nil), rows...)
	return nil
}

func newTestTable(t *testing.T, store *fakeStore) (*Table, *int) {
	calls := 0
	table, err := NewTable(store, func() { calls++ })
	require.NoError(t, err, "creating table")
	return table, &calls
}

func TestNewTable_RequiresStore(t *testing.T) {
	_, err := NewTable(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is required")
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		rows        []Row
		wantEmpty   bool
		wantIndices []int
		wantAll     []Mapping
	}{
		{
			name:      "zero_rows",
			rows:      nil,
			wantEmpty: true,
		},
		{
			name:        "empty_key",
			rows:        []Row{{Key: ":a:", Value: "α"}, {Key: "", Value: "x"}},
			wantIndices: []int{2},
		},
		{
			name:        "empty_value",
			rows:        []Row{{Key: ":a:", Value: ""}},
			wantIndices: []int{1},
		},
		{
			name:        "duplicate_keys",
			rows:        []Row{{Key: ":a:", Value: "α"}, {Key: ":b:", Value: "β"}, {Key: ":a:", Value: "A"}},
			wantIndices: []int{1, 3},
		},
		{
			name:    "valid_rows_sorted",
			rows:    []Row{{Key: ":b:", Value: "β"}, {Key: ":a:", Value: "α"}},
			wantAll: []Mapping{{":a:", "α"}, {":b:", "β"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, _ := newTestTable(t, &fakeStore{})
			err := table.Load(tt.rows)

			switch {
			case tt.wantEmpty:
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmpty), "should be ErrEmpty")
			case tt.wantIndices != nil:
				var invalid *InvalidError
				require.True(t, errors.As(err, &invalid), "should be InvalidError, got %v", err)
				assert.Equal(t, tt.wantIndices, invalid.Indices)
				assert.Empty(t, table.All(), "canonical set should be untouched")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantAll, table.All())
			}
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("missing_table_creates_and_persists_defaults", func(t *testing.T) {
		store := &fakeStore{}
		table, calls := newTestTable(t, store)

		require.NoError(t, table.Open(ctx))
		assert.True(t, store.exists)
		assert.Equal(t, Defaults(), table.All())
		assert.Len(t, store.rows, len(Defaults()))
		assert.Zero(t, *calls, "open should not notify")
	})

	t.Run("empty_table_falls_back_then_reloads", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, _ := newTestTable(t, store)

		require.True(t, errors.Is(table.Load(nil), ErrEmpty))
		require.NoError(t, table.Open(ctx))
		assert.Equal(t, 1, store.writes, "defaults should be persisted")

		// a fresh table over the same store now loads the persisted defaults
		again, _ := newTestTable(t, store)
		require.NoError(t, again.Open(ctx))
		assert.Equal(t, Defaults(), again.All())
		assert.Equal(t, 1, store.writes, "successful load should not write")
	})

	t.Run("malformed_rows_fall_back", func(t *testing.T) {
		store := &fakeStore{exists: true, rows: []Row{{Key: "", Value: "x"}}}
		table, _ := newTestTable(t, store)

		require.NoError(t, table.Open(ctx))
		assert.Equal(t, Defaults(), table.All())
	})

	t.Run("read_error_falls_back", func(t *testing.T) {
		store := &fakeStore{exists: true, readErr: errors.New("disk gone")}
		table, _ := newTestTable(t, store)

		require.NoError(t, table.Open(ctx))
		assert.Equal(t, Defaults(), table.All())
	})

	t.Run("persisted_rows_load", func(t *testing.T) {
		store := &fakeStore{exists: true, rows: []Row{{Key: ":geq:", Value: "≥"}}}
		table, _ := newTestTable(t, store)

		require.NoError(t, table.Open(ctx))
		assert.Equal(t, []Mapping{{":geq:", "≥"}}, table.All())
		assert.Zero(t, store.writes)
	})

	t.Run("persist_failure_keeps_defaults_in_memory", func(t *testing.T) {
		store := &fakeStore{exists: true, replaceErr: errors.New("read only")}
		table, _ := newTestTable(t, store)

		err := table.Open(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "persisting default mappings")
		assert.Equal(t, Defaults(), table.All())
	})
}

func TestCommit(t *testing.T) {
	ctx := setupTestLogger(t)

	t.Run("valid_commit_persists_and_notifies_once", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, calls := newTestTable(t, store)

		candidates := []Mapping{{":z:", "ζ"}, {":a:", "α"}, {"--", "‒"}}
		res := table.Commit(ctx, candidates)
		require.True(t, res.OK(), "commit should succeed: %+v", res)

		want := []Mapping{{"--", "‒"}, {":a:", "α"}, {":z:", "ζ"}}
		assert.Equal(t, want, table.All())
		assert.Equal(t, []Row{{"--", "‒"}, {":a:", "α"}, {":z:", "ζ"}}, store.rows)
		assert.Equal(t, 1, *calls)
	})

	t.Run("duplicates_rejected_without_side_effects", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, calls := newTestTable(t, store)
		require.NoError(t, table.Load([]Row{{":a:", "α"}}))

		res := table.Commit(ctx, []Mapping{{":a:", "α"}, {":a:", "A"}, {":b:", "β"}, {":b:", "B"}})
		assert.Equal(t, DuplicateKeys, res.Code)
		assert.Equal(t, []string{":a:", ":b:"}, res.Duplicates)
		assert.Equal(t, []Mapping{{":a:", "α"}}, table.All())
		assert.Zero(t, store.writes)
		assert.Zero(t, *calls)
	})

	t.Run("format_errors_rejected", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, calls := newTestTable(t, store)

		res := table.Commit(ctx, []Mapping{{":a:", ""}, {"", "x"}})
		assert.Equal(t, FormatErrors, res.Code)
		require.Len(t, res.Format, 2)
		assert.Equal(t, 1, res.Format[0].Index)
		assert.Equal(t, 2, res.Format[1].Index)
		assert.Zero(t, store.writes)
		assert.Zero(t, *calls)
	})

	t.Run("persist_failure_leaves_state", func(t *testing.T) {
		store := &fakeStore{exists: true, replaceErr: errors.New("locked")}
		table, calls := newTestTable(t, store)
		require.NoError(t, table.Load([]Row{{":a:", "α"}}))

		res := table.Commit(ctx, []Mapping{{":b:", "β"}})
		assert.Equal(t, PersistFailed, res.Code)
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "locked")
		assert.Equal(t, []Mapping{{":a:", "α"}}, table.All())
		assert.Zero(t, *calls)
	})

	t.Run("caller_slice_not_aliased", func(t *testing.T) {
		table, _ := newTestTable(t, &fakeStore{exists: true})
		candidates := []Mapping{{":b:", "β"}, {":a:", "α"}}
		require.True(t, table.Commit(ctx, candidates).OK())
		candidates[0].Replacement = "changed"
		assert.Equal(t, []Mapping{{":a:", "α"}, {":b:", "β"}}, table.All())
	})

	t.Run("reset_commits_defaults", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, calls := newTestTable(t, store)
		require.NoError(t, table.Load([]Row{{":a:", "α"}}))

		require.True(t, table.Reset(ctx).OK())
		assert.Equal(t, Defaults(), table.All())
		assert.Equal(t, 1, *calls)
	})

	t.Run("no_substring_mode_rejects_contained_triggers", func(t *testing.T) {
		store := &fakeStore{exists: true}
		table, err := NewTable(store, nil, WithNoSubstring(true))
		require.NoError(t, err)

		res := table.Commit(ctx, []Mapping{{":N:", "↑"}, {":N2:", "⇑"}, {"--", "‒"}, {"---", "—"}})
		assert.Equal(t, SubstringConflicts, res.Code)
		assert.Equal(t, []Conflict{{Trigger: "---", Other: "--"}}, res.Conflicts)
		assert.Zero(t, store.writes)
	})
}

func TestDefaults(t *testing.T) {
	defaults := Defaults()
	require.NotEmpty(t, defaults)

	res := ValidateMappings(defaults, ValidateOptions{})
	assert.True(t, res.OK(), "defaults should validate: %+v", res)

	for i := 1; i < len(defaults); i++ {
		assert.Less(t, defaults[i-1].Trigger, defaults[i].Trigger, "defaults should be sorted")
	}

	table, _ := newTestTable(t, &fakeStore{})
	assert.Equal(t, defaults, table.Defaults(), "defaults independent of load state")
}
