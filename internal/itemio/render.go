package itemio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/collection/pkg/types"
)

// Render writes arr to w in the given output format. An empty format means
// JSON.
func Render(w io.Writer, arr types.Array, format string) error {
	switch format {
	case "", types.FormatJSON:
		out, err := json.MarshalIndent(arr, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case types.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(arr); err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		return enc.Close()
	case types.FormatTable:
		_, err := fmt.Fprintln(w, Table(arr))
		return err
	default:
		return fmt.Errorf("%w: %q", types.ErrFormatUnknown, format)
	}
}

// Table renders arr as a two-column key/value table. Composite values are
// shown as compact JSON.
func Table(arr types.Array) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Key", "Value"})
	for _, e := range arr {
		tbl.AppendRow(table.Row{e.Key.String(), FormatValue(e.Value)})
	}
	tbl.AppendFooter(table.Row{"Total", fmt.Sprintf("%d items", arr.Len())})
	return tbl.Render()
}

// FormatValue renders a single value as compact JSON, or with %v when the
// value cannot be encoded.
func FormatValue(v any) string {
	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
