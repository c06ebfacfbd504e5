package applemusic

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/strcase"
)

// Decode parses a JSON payload into T.
//
// Object keys written in snake_case are rewritten to lowerCamel first, so a wire
// key "album_name" fills the field tagged "albumName". Unknown keys are ignored
// and missing keys leave zero values. Anything after the first value is an error.
func Decode[T any](body []byte) (T, error) {
	var out T

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return out, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return out, errors.New("invalid JSON: trailing data")
	}

	normalized, err := json.Marshal(camelizeKeys(raw))
	if err != nil {
		return out, fmt.Errorf("failed to re-encode payload: %w", err)
	}

	if err := json.Unmarshal(normalized, &out); err != nil {
		return out, err
	}
	return out, nil
}

func camelizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[camelizeKey(k)] = camelizeKeys(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = camelizeKeys(val)
		}
		return t
	default:
		return v
	}
}

// camelizeKey converts snake_case keys only. Keys like "library-songs" or "bgColor" pass through.
func camelizeKey(k string) string {
	if !strings.Contains(strings.Trim(k, "_"), "_") {
		return k
	}
	return strcase.ToLowerCamel(k)
}
