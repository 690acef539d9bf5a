package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/internal/itemio"
)

func newConvertCmd(a *app) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "convert <items-file>",
		Short: "Load items into a collection and print it",
		Long: `Convert builds a collection of the declared value type from a list of items
and prints its plain array form. Loading stops at the first rejected item.

Example:
  collection convert --type integer --format yaml items.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := itemio.ReadFile(args[0], inputFormat)
			if err != nil {
				return err
			}
			c, err := a.newCollection(items)
			if err != nil {
				return err
			}
			return itemio.Render(cmd.OutOrStdout(), c.ToArray(), a.cfg.Format)
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input", "", "input format: json, jsonl, or yaml (default: from extension)")
	return cmd
}
