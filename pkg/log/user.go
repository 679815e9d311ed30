package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/symbol"
)

// 📢 UserLogger provides user-friendly feedback about table changes
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎯 NewUserLogger creates a new user logger writing to stdout
func NewUserLogger(ctx context.Context) *UserLogger {
	return NewUserLoggerTo(ctx, os.Stdout)
}

// NewUserLoggerTo creates a user logger writing to out.
func NewUserLoggerTo(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 💾 LogCommit reports the outcome of a commit
func (u *UserLogger) LogCommit(op string, res symbol.ValidationResult, count int, message string) {
	switch {
	case res.OK():
		msg := fmt.Sprintf("%s: saved %d mappings", op, count)
		u.printer(pterm.Success, "✨").Println(msg)
		u.log.Info().Str("op", op).Int("count", count).Msg(msg)
	case res.Code == symbol.PersistFailed:
		u.printer(pterm.Error, "❌").Println(strings.TrimRight(message, "\n"))
		u.log.Error().Err(res.Err).Str("op", op).Msg("commit failed")
	default:
		u.printer(pterm.Warning, "⚠️").Println(strings.TrimRight(message, "\n"))
		u.log.Warn().Str("op", op).Str("code", res.Code.String()).Msg("commit rejected")
	}
}

// 📊 LogStateChange reports what the tool is doing next
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 📄 LogFileWritten reports a written output file
func (u *UserLogger) LogFileWritten(path string, count int) {
	msg := fmt.Sprintf("Wrote %d mappings to %s", count, filepath.Base(path))
	u.printer(pterm.Success, "📝").Println(msg)
	u.log.Info().Str("path", path).Int("count", count).Msg(msg)
}

// 👀 LogWatch reports a watched file event
func (u *UserLogger) LogWatch(path string, event string) {
	msg := fmt.Sprintf("%s %s", event, filepath.Base(path))
	u.printer(pterm.Info, "👀").Println(msg)
	u.log.Info().Str("path", path).Str("event", event).Msg("watch event")
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
		return
	}
	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.out).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}
	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}
