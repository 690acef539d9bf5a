package cli

import (
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/internal/itemio"
)

func newCheckCmd(a *app) *cobra.Command {
	var inputFormat string
	cmd := &cobra.Command{
		Use:   "check <items-file>",
		Short: "Validate items against the value type",
		Long: `Check reads a list of items and reports every item the declared value type
rejects. Use "-" to read from stdin.

Example:
  collection check --type integer items.json
  collection check --type string --input jsonl events.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := itemio.ReadFile(args[0], inputFormat)
			if err != nil {
				return err
			}
			c, err := a.newCollection(nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rejected := 0
			for i, item := range items {
				if c.IsValidType(item) {
					continue
				}
				rejected++
				fmt.Fprintf(out, "item %d: %s rejected (%s)\n", i, itemio.FormatValue(item), dynamicType(item))
			}
			fmt.Fprintf(out, "%d of %d items valid for %q\n", len(items)-rejected, len(items), c.ValueType().Name())
			a.logger.Debug("check done", "items", len(items), "rejected", rejected)
			if rejected > 0 {
				return fmt.Errorf("%w: %d", ErrInvalidItems, rejected)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&inputFormat, "input", "", "input format: json, jsonl, or yaml (default: from extension)")
	return cmd
}

func dynamicType(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
