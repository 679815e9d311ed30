package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// 🗄️ SQLite stores rows in a sqlite database table
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for an
// in-process database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening symbol database")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Errorf("opening database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Errorf("connecting to database: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an existing database handle.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) TableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", TableName).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Errorf("checking table: %w", err)
	}
	return true, nil
}

func (s *SQLite) CreateTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS "+TableName+" (key varchar(255), value varchar(255))")
	if err != nil {
		return errors.Errorf("creating table: %w", err)
	}
	return nil
}

func (s *SQLite) ReadAllRows(ctx context.Context) ([]symbol.Row, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM "+TableName)
	if err != nil {
		return nil, errors.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []symbol.Row
	for rows.Next() {
		var key, value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.Errorf("scanning row: %w", err)
		}
		out = append(out, symbol.Row{Key: key.String, Value: value.String})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func (s *SQLite) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx}, nil
}

func (s *SQLite) ReplaceAll(ctx context.Context, rows []symbol.Row) error {
	return replaceAll(ctx, s, rows)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) DeleteAll(ctx context.Context) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM "+TableName)
	return err
}

func (t *sqliteTx) Insert(ctx context.Context, key, value string) error {
	_, err := t.tx.ExecContext(ctx, "INSERT INTO "+TableName+" VALUES (?, ?)", key, value)
	return err
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}
