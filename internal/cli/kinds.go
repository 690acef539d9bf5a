package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/collection/pkg/types"
)

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the basic value kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := types.Kinds()
			out := cmd.OutOrStdout()
			switch a.cfg.Format {
			case types.FormatTable:
				tbl := table.NewWriter()
				tbl.SetStyle(table.StyleLight)
				tbl.AppendHeader(table.Row{"Kind"})
				for _, k := range kinds {
					tbl.AppendRow(table.Row{k})
				}
				fmt.Fprintln(out, tbl.Render())
				return nil
			case types.FormatYAML:
				data, err := yaml.Marshal(kinds)
				if err != nil {
					return fmt.Errorf("marshal YAML: %w", err)
				}
				_, err = out.Write(data)
				return err
			case "", types.FormatJSON:
				data, err := json.MarshalIndent(kinds, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			default:
				return fmt.Errorf("%w: %q", types.ErrFormatUnknown, a.cfg.Format)
			}
		},
	}
}
