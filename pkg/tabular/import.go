package tabular

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📥 Import validates raw entries (blank entries allowed) and converts them to
// mappings sorted by trigger. On any failure no mappings are returned.
func Import(rows [][]string, opts symbol.ValidateOptions) ([]symbol.Mapping, symbol.ValidationResult) {
	opts.IgnoreEmpty = true
	res := symbol.Validate(rows, opts)
	if !res.OK() {
		return nil, res
	}

	mappings := make([]symbol.Mapping, 0, len(rows))
	for _, fields := range rows {
		if len(fields) == 0 {
			continue
		}
		m, err := symbol.NewMapping(fields...)
		if err != nil {
			// unreachable after a successful Validate
			continue
		}
		mappings = append(mappings, m)
	}
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].Trigger < mappings[j].Trigger
	})
	return mappings, res
}

// ImportReader reads and imports a single stream.
func ImportReader(r io.Reader, f Format, opts symbol.ValidateOptions) ([]symbol.Mapping, symbol.ValidationResult, error) {
	rows, err := Read(r, f)
	if err != nil {
		return nil, symbol.ValidationResult{}, err
	}
	mappings, res := Import(rows, opts)
	return mappings, res, nil
}

// ExpandPatterns resolves doublestar patterns to a sorted, de-duplicated
// list of paths. A pattern matching nothing is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// 📚 ImportFiles reads every file matched by patterns concurrently and
// validates the merged entries as one list. Format errors carry a
// "path:line" Location.
func ImportFiles(ctx context.Context, patterns []string, f Format, opts symbol.ValidateOptions) ([]symbol.Mapping, symbol.ValidationResult, error) {
	logger := zerolog.Ctx(ctx)

	paths, err := ExpandPatterns(patterns)
	if err != nil {
		return nil, symbol.ValidationResult{}, err
	}

	contents := make([][][]string, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := readFile(path, f.resolve(path))
			if err != nil {
				return err
			}
			contents[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, symbol.ValidationResult{}, err
	}

	var merged [][]string
	var locations []string
	for i, rows := range contents {
		for line, fields := range rows {
			merged = append(merged, fields)
			locations = append(locations, fmt.Sprintf("%s:%d", paths[i], line+1))
		}
		logger.Debug().Str("path", paths[i]).Int("lines", len(rows)).Msg("read import file")
	}

	mappings, res := Import(merged, opts)
	for i := range res.Format {
		res.Format[i].Location = locations[res.Format[i].Index-1]
	}
	return mappings, res, nil
}

func readFile(path string, f Format) ([][]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer fh.Close()

	rows, err := Read(fh, f)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}

// WriteFile writes mappings to path, choosing the format from the extension
// when f is FormatAuto.
func WriteFile(path string, mappings []symbol.Mapping, f Format) error {
	var buf bytes.Buffer
	if err := Write(&buf, mappings, f.resolve(path)); err != nil {
		return errors.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
