package symbol

import (
	"bytes"
	"encoding/json"

	"gitlab.com/tozd/go/errors"
)

// EncodeWireFormat serializes entries as a JSON array of {key, val, f}
// objects, then encodes that text once more as a JSON string literal so it
// can be passed as a single quoted argument.
func EncodeWireFormat(entries []MatchEntry) (string, error) {
	if entries == nil {
		entries = []MatchEntry{}
	}
	inner, err := marshalNoEscape(entries)
	if err != nil {
		return "", errors.Errorf("encoding match list: %w", err)
	}
	outer, err := marshalNoEscape(string(inner))
	if err != nil {
		return "", errors.Errorf("encoding wire string: %w", err)
	}
	return string(outer), nil
}

// DecodeWireFormat undoes both encoding layers of EncodeWireFormat.
func DecodeWireFormat(wire string) ([]MatchEntry, error) {
	var inner string
	if err := json.Unmarshal([]byte(wire), &inner); err != nil {
		return nil, errors.Errorf("decoding wire string: %w", err)
	}
	var entries []MatchEntry
	if err := json.Unmarshal([]byte(inner), &entries); err != nil {
		return nil, errors.Errorf("decoding match list: %w", err)
	}
	for i, e := range entries {
		if e.Kind < Delimited || e.Kind > Block {
			return nil, errors.Errorf("entry %d: unknown flag %d", i, e.Kind)
		}
	}
	return entries, nil
}

// trigger tokens like "->" must stay readable to the host runtime
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
