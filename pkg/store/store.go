// Package store persists symbol mappings as (key, value) rows.
package store

import (
	"context"

	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// TableName is the table all implementations read from and write to.
const TableName = "ins_symbols"

// 💾 Store is a key-value row store with transactional bulk writes
type Store interface {
	TableExists(ctx context.Context) (bool, error)
	CreateTable(ctx context.Context) error
	ReadAllRows(ctx context.Context) ([]symbol.Row, error)
	Begin(ctx context.Context) (Tx, error)
	ReplaceAll(ctx context.Context, rows []symbol.Row) error
	Close() error
}

// 🔒 Tx is one write transaction. Nothing is visible to readers until Commit.
type Tx interface {
	DeleteAll(ctx context.Context) error
	Insert(ctx context.Context, key, value string) error
	Commit() error
	Rollback() error
}

// replaceAll truncates and bulk-inserts rows inside a single transaction,
// rolling back on any failure.
func replaceAll(ctx context.Context, s Store, rows []symbol.Row) (err error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return errors.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err := tx.DeleteAll(ctx); err != nil {
		return errors.Errorf("deleting rows: %w", err)
	}
	for i, r := range rows {
		if err := tx.Insert(ctx, r.Key, r.Value); err != nil {
			return errors.Errorf("inserting row %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Errorf("committing transaction: %w", err)
	}
	return nil
}
