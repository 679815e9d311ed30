package tabular

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/insertsym/pkg/symbol"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   [][]string
	}{
		{
			name:   "whitespace_keeps_blank_lines",
			input:  ":geq: ≥\n\n->\t→\n",
			format: FormatWhitespace,
			want:   [][]string{{":geq:", "≥"}, {}, {"->", "→"}},
		},
		{
			name:   "whitespace_extra_fields",
			input:  "a b c\n",
			format: FormatWhitespace,
			want:   [][]string{{"a", "b", "c"}},
		},
		{
			name:   "csv_quoted_comma",
			input:  "\",\",\"comma\"\r\n:pi:,π\n",
			format: FormatCSV,
			want:   [][]string{{",", "comma"}, {":pi:", "π"}},
		},
		{
			name:   "csv_variable_fields",
			input:  "a\n\nb,c,d\n",
			format: FormatCSV,
			want:   [][]string{{"a"}, {}, {"b", "c", "d"}},
		},
		{
			name:   "byte_order_mark",
			input:  "\ufeff:pi:,π\n",
			format: FormatCSV,
			want:   [][]string{{":pi:", "π"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImport(t *testing.T) {
	t.Run("sorted_and_blank_lines_dropped", func(t *testing.T) {
		rows := [][]string{{"b", "2"}, {}, {"a", "1"}}
		mappings, res := Import(rows, symbol.ValidateOptions{})
		require.True(t, res.OK())
		assert.Equal(t, []symbol.Mapping{{Trigger: "a", Replacement: "1"}, {Trigger: "b", Replacement: "2"}}, mappings)
	})

	t.Run("three_field_row_aborts", func(t *testing.T) {
		input := ":geq: ≥\n\n:leq: ≤ extra\n"
		mappings, res, err := ImportReader(strings.NewReader(input), FormatWhitespace, symbol.ValidateOptions{})
		require.NoError(t, err)
		assert.Nil(t, mappings)
		require.Equal(t, symbol.FormatErrors, res.Code)
		require.Len(t, res.Format, 1)
		assert.Equal(t, 3, res.Format[0].Index, "line number counts the blank line")

		msg := FormatMessage("Unable to import", res, "Line")
		assert.Equal(t,
			"Error: Unable to import due to incorrect format in the following lines (expecting <key> <value>).\n\n"+
				"Line 3: :leq: ≤ extra\n", msg)
	})

	t.Run("duplicates_abort", func(t *testing.T) {
		rows := [][]string{{"a", "1"}, {"b", "2"}, {"a", "3"}}
		mappings, res := Import(rows, symbol.ValidateOptions{})
		assert.Nil(t, mappings)
		require.Equal(t, symbol.DuplicateKeys, res.Code)
		assert.Equal(t,
			"Error: Unable to import as the following duplicate keys were detected: \n\na\n",
			FormatMessage("Unable to import", res, "Line"))
	})

	t.Run("substring_mode", func(t *testing.T) {
		rows := [][]string{{"--", "‒"}, {"---", "—"}}
		_, res := Import(rows, symbol.ValidateOptions{NoSubstring: true})
		require.Equal(t, symbol.SubstringConflicts, res.Code)
		assert.Contains(t, FormatMessage("Unable to import", res, "Line"), "'---' and '--'")
	})
}

func TestFormatMessage_Ok(t *testing.T) {
	assert.Empty(t, FormatMessage("Unable to import", symbol.ValidationResult{Code: symbol.Ok}, "Line"))
}

func TestImportFiles(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "arrows.txt", "-> →\n<- ←\n")
	writeFile(t, dir, "nested/math.csv", ":geq:,≥\n\n:leq:,≤\n")

	mappings, res, err := ImportFiles(ctx, []string{filepath.Join(dir, "**", "*.{txt,csv}")}, FormatAuto, symbol.ValidateOptions{})
	require.NoError(t, err)
	require.True(t, res.OK(), "result: %+v", res)
	assert.Equal(t, []symbol.Mapping{
		{Trigger: "->", Replacement: "→"},
		{Trigger: ":geq:", Replacement: "≥"},
		{Trigger: ":leq:", Replacement: "≤"},
		{Trigger: "<-", Replacement: "←"},
	}, mappings)
}

func TestImportFiles_LocationsAcrossFiles(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "-> →\n")
	b := writeFile(t, dir, "b.txt", "\nbad\n")

	mappings, res, err := ImportFiles(ctx, []string{a, b}, FormatAuto, symbol.ValidateOptions{})
	require.NoError(t, err)
	assert.Nil(t, mappings)
	require.Equal(t, symbol.FormatErrors, res.Code)
	require.Len(t, res.Format, 1)
	assert.Equal(t, b+":2", res.Format[0].Location)
	assert.Contains(t, FormatMessage("Unable to import", res, "Line"), "Line "+b+":2: bad")
}

func TestImportFiles_NoMatch(t *testing.T) {
	_, _, err := ImportFiles(testContext(t), []string{filepath.Join(t.TempDir(), "*.csv")}, FormatAuto, symbol.ValidateOptions{})
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	mappings := []symbol.Mapping{
		{Trigger: ",", Replacement: "comma"},
		{Trigger: ":pi:", Replacement: "π"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, mappings, FormatCSV))
	assert.Equal(t, "\",\",comma\n:pi:,π\n", buf.String())

	rows, err := Read(&buf, FormatCSV)
	require.NoError(t, err)
	got, res := Import(rows, symbol.ValidateOptions{})
	require.True(t, res.OK())
	assert.Equal(t, mappings, got)

	buf.Reset()
	require.NoError(t, Write(&buf, mappings[1:], FormatWhitespace))
	assert.Equal(t, ":pi: π\n", buf.String())
}

func TestWrite_WhitespaceInFields(t *testing.T) {
	tests := []struct {
		name    string
		mapping symbol.Mapping
	}{
		{name: "space_in_replacement", mapping: symbol.Mapping{Trigger: ":ne:", Replacement: "a b"}},
		{name: "tab_in_trigger", mapping: symbol.Mapping{Trigger: "a\tb", Replacement: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mappings := []symbol.Mapping{{Trigger: ":pi:", Replacement: "π"}, tt.mapping}

			var buf bytes.Buffer
			err := Write(&buf, mappings, FormatWhitespace)
			require.Error(t, err, "whitespace fields do not survive the whitespace format")
			assert.Contains(t, err.Error(), strconv.Quote(tt.mapping.Trigger))
			assert.Empty(t, buf.String(), "nothing is written on rejection")

			buf.Reset()
			require.NoError(t, Write(&buf, mappings, FormatCSV))
			got, res, err := ImportReader(&buf, FormatCSV, symbol.ValidateOptions{})
			require.NoError(t, err)
			require.True(t, res.OK(), "csv round trip: %s", FormatMessage("Unable to import", res, "Line"))
			assert.ElementsMatch(t, mappings, got)
		})
	}

	path := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(path, []byte(":pi: π\n"), 0o644))
	err := WriteFile(path, []symbol.Mapping{{Trigger: ":ne:", Replacement: "a b"}}, FormatAuto)
	require.Error(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":pi: π\n", string(data), "a rejected export leaves the file untouched")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, []symbol.Mapping{{Trigger: "->", Replacement: "→"}}, FormatAuto))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "->,→\n", string(data))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "CSV": FormatCSV, "txt": FormatWhitespace} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatCSV, FormatFromPath("a/b.CSV"))
	assert.Equal(t, FormatWhitespace, FormatFromPath("a/b.txt"))
}
