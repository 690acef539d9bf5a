package itemio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"items.json":   InputJSON,
		"items.JSONL":  InputJSONL,
		"items.ndjson": InputJSONL,
		"items.yml":    InputYAML,
		"items.yaml":   InputYAML,
		"items.txt":    InputJSON,
		"-":            InputJSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFormat(path), path)
	}
}

func TestReadItems_JSONNumbers(t *testing.T) {
	items, err := ReadItems(strings.NewReader(`[1, 2.5, "x", true, null, {"n": 3}, [4]]`), InputJSON)
	require.NoError(t, err)
	assert.Equal(t, []any{
		int64(1), 2.5, "x", true, nil,
		map[string]any{"n": int64(3)},
		[]any{int64(4)},
	}, items)
}

func TestReadItems_JSONRequiresArray(t *testing.T) {
	_, err := ReadItems(strings.NewReader(`{"a": 1}`), InputJSON)
	assert.Error(t, err)
}

func TestReadItems_JSONLSkipsMalformedLines(t *testing.T) {
	input := "1\n\n{bad json\n\"two\"\n3 4\n{\"k\": 1.5}\n"
	items, err := ReadItems(strings.NewReader(input), InputJSONL)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "two", map[string]any{"k": 1.5}}, items)
}

func TestReadItems_YAML(t *testing.T) {
	items, err := ReadItems(strings.NewReader("- 1\n- two\n- 3.5\n- {k: v}\n"), InputYAML)
	require.NoError(t, err)
	assert.Equal(t, []any{1, "two", 3.5, map[string]any{"k": "v"}}, items)

	items, err = ReadItems(strings.NewReader(""), InputYAML)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadItems_UnknownFormat(t *testing.T) {
	_, err := ReadItems(strings.NewReader("[]"), "xml")
	assert.ErrorIs(t, err, ErrInputFormat)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o644))

	items, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)

	_, err = ReadFile(filepath.Join(dir, "missing.json"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"5", int64(5)},
		{"-2.5", -2.5},
		{`"quoted"`, "quoted"},
		{"true", true},
		{"null", nil},
		{"bare", "bare"},
		{"12abc", "12abc"},
		{"", ""},
		{`[1,"a"]`, []any{int64(1), "a"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValue(tt.in), tt.in)
	}
}
