package opts

import (
	"context"
	"io"
	"os"

	"github.com/walteh/insertsym/pkg/config"
	"github.com/walteh/insertsym/pkg/engine"
	"github.com/walteh/insertsym/pkg/log"
	"github.com/walteh/insertsym/pkg/store"
	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Store      store.Store
	Table      *symbol.Table
	Hub        *engine.Hub
	Logger     *log.Logger
	UserLogger *log.UserLogger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Open wires the store, table and hub described by cfg. A failure to
// persist the fallback defaults is reported but leaves a usable table.
func Open(ctx context.Context, cfg *config.Config, console *log.Logger, user *log.UserLogger) (*RootOpts, error) {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hub := engine.NewHub(nil)
	var table *symbol.Table
	table, err = symbol.NewTable(st, func() {
		hub.Broadcast(ctx, table.MatchList())
	},
		symbol.WithSpecialTokens(cfg.SpecialTokens),
		symbol.WithNoSubstring(cfg.StrictSubstrings),
	)
	if err != nil {
		st.Close()
		return nil, errors.Errorf("creating table: %w", err)
	}

	if err := table.Open(ctx); err != nil {
		user.LogValidation(false, "Using default symbols without saving them", err)
	}
	hub.Broadcast(ctx, table.MatchList())

	return &RootOpts{
		Config:     cfg,
		Store:      st,
		Table:      table,
		Hub:        hub,
		Logger:     console,
		UserLogger: user,
		In:         os.Stdin,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Ephemeral {
		return store.NewMemory(), nil
	}
	st, err := store.OpenSQLite(ctx, cfg.Database)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", cfg.Database, err)
	}
	return st, nil
}

// Close releases the store.
func (o *RootOpts) Close() error {
	if o == nil || o.Store == nil {
		return nil
	}
	return o.Store.Close()
}

// ValidateOptions returns the validation rules the config selects.
func (o *RootOpts) ValidateOptions() symbol.ValidateOptions {
	return symbol.ValidateOptions{NoSubstring: o.Config.StrictSubstrings}
}
