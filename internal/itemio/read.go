// Package itemio reads item lists for the collection CLI and renders
// collection Arrays as JSON, YAML, or a text table.
package itemio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input formats for item files.
const (
	InputJSON  = "json"
	InputJSONL = "jsonl"
	InputYAML  = "yaml"
)

// ErrInputFormat is returned for an unrecognized input format.
var ErrInputFormat = errors.New("unknown input format")

// DetectFormat picks an input format from the file extension. Unknown
// extensions, and "-" for stdin, fall back to JSON.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return InputJSONL
	case ".yaml", ".yml":
		return InputYAML
	default:
		return InputJSON
	}
}

// ReadFile reads items from path, or from stdin when path is "-". An empty
// format is detected from the extension.
func ReadFile(path, format string) ([]any, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	if path == "-" {
		return ReadItems(os.Stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	items, err := ReadItems(f, format)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return items, nil
}

// ReadItems decodes a list of items from r. JSON input must be an array,
// YAML input a sequence, and JSONL input one value per line. JSON numbers
// become int64 when integral and float64 otherwise.
func ReadItems(r io.Reader, format string) ([]any, error) {
	switch format {
	case InputJSON:
		return readJSONArray(r)
	case InputJSONL:
		return readJSONL(r)
	case InputYAML:
		return readYAMLSequence(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInputFormat, format)
	}
}

func readJSONArray(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding JSON array: %w", err)
	}
	items := make([]any, len(raw))
	for i, v := range raw {
		items[i] = normalize(v)
	}
	return items, nil
}

// readJSONL returns each non-empty, parseable line as an item. Malformed
// lines are skipped.
func readJSONL(r io.Reader) ([]any, error) {
	var items []any
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		v, err := decodeJSON(line)
		if err != nil {
			continue
		}
		items = append(items, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning JSONL: %w", err)
	}
	return items, nil
}

func readYAMLSequence(r io.Reader) ([]any, error) {
	var items []any
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding YAML sequence: %w", err)
	}
	return items, nil
}

// ParseValue interprets s as a JSON value, falling back to the raw string
// when s is not valid JSON.
func ParseValue(s string) any {
	v, err := decodeJSON([]byte(s))
	if err != nil {
		return s
	}
	return v
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON value")
	}
	return normalize(v), nil
}

// normalize replaces json.Number values, recursively, with int64 or float64.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	case map[string]any:
		for k := range t {
			t[k] = normalize(t[k])
		}
		return t
	default:
		return v
	}
}
