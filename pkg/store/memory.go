package store

import (
	"context"

	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// Memory is a process-local Store. Transactions stage writes and publish
// them on Commit.
type Memory struct {
	exists bool
	rows   []symbol.Row
}

// NewMemory returns an empty store with no table.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) TableExists(ctx context.Context) (bool, error) {
	return m.exists, nil
}

func (m *Memory) CreateTable(ctx context.Context) error {
	m.exists = true
	return nil
}

func (m *Memory) ReadAllRows(ctx context.Context) ([]symbol.Row, error) {
	if !m.exists {
		return nil, errors.Errorf("no such table: %s", TableName)
	}
	return append([]symbol.Row(nil), m.rows...), nil
}

func (m *Memory) Begin(ctx context.Context) (Tx, error) {
	if !m.exists {
		return nil, errors.Errorf("no such table: %s", TableName)
	}
	return &memoryTx{store: m, rows: append([]symbol.Row(nil), m.rows...)}, nil
}

func (m *Memory) ReplaceAll(ctx context.Context, rows []symbol.Row) error {
	return replaceAll(ctx, m, rows)
}

func (m *Memory) Close() error {
	return nil
}

type memoryTx struct {
	store *Memory
	rows  []symbol.Row
	done  bool
}

func (t *memoryTx) DeleteAll(ctx context.Context) error {
	t.rows = t.rows[:0]
	return nil
}

func (t *memoryTx) Insert(ctx context.Context, key, value string) error {
	if t.done {
		return errors.Errorf("transaction closed")
	}
	t.rows = append(t.rows, symbol.Row{Key: key, Value: value})
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return errors.Errorf("transaction closed")
	}
	t.done = true
	t.store.rows = t.rows
	return nil
}

func (t *memoryTx) Rollback() error {
	t.done = true
	return nil
}
