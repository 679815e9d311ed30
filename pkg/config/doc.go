// Package config loads insertsym tool settings.
//
//	            +-------------+
//	            |   Config    |
//	            | (Settings)  |
//	            +------+------+
//	                   |
//	   +-------+-------+-------+-------+
//	   |       |               |       |
//	+--+---+ +-+----+     +----+-+ +---+--+
//	| JSON | | YAML |     | HCL  | | TOML |
//	+------+ +------+     +------+ +------+
//
// 🎯 Purpose:
// - Chooses a parser by file extension
// - Rejects unknown fields in every format
// - Applies defaults (database path, special tokens, log level)
//
// The extensionless .insertsymrc file is tried as YAML, then as HCL. HCL
// files may reference the built-in list as default_special_tokens:
//
//	database = "symbols.db"
//	special_tokens = default_special_tokens
//
// or spell it out:
//
//	special_tokens = ["->", "<-"]
//	special_tokens = ["->", "<-"]
//
//	import {
//	  patterns = ["symbols/**/*.csv"]
//	  format   = "csv"
//	}
//
// 🔍 Example:
//
//	cfg, err := config.Load(ctx, ".insertsymrc")
//	if err != nil {
//		return err
//	}
//	table, err := symbol.NewTable(store, notify, symbol.WithSpecialTokens(cfg.SpecialTokens))
package config
