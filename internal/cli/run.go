package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/internal/itemio"
	"github.com/mesh-intelligence/collection/internal/script"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		itemsFile   string
		inputFormat string
		keepGoing   bool
	)
	cmd := &cobra.Command{
		Use:   "run <script-file>",
		Short: "Run a collection script",
		Long: `Run applies the operations in a script to a collection of the declared
value type. Use "-" to read the script from stdin.

Operations: add, set, put, get, exists, remove, first, last, pop, shift,
count, clear, valid, rekey, rekey-many, dump.

Example:
  collection run --type integer --items seed.json ops.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []any
			if itemsFile != "" {
				var err error
				items, err = itemio.ReadFile(itemsFile, inputFormat)
				if err != nil {
					return err
				}
			}
			c, err := a.newCollection(items)
			if err != nil {
				return err
			}

			src, closeSrc, err := openScript(cmd, args[0])
			if err != nil {
				return err
			}
			defer closeSrc()

			in := script.New(c, cmd.OutOrStdout(),
				script.WithLogger(a.logger),
				script.WithFormat(a.cfg.Format),
				script.WithKeepGoing(keepGoing),
			)
			return in.Run(src)
		},
	}
	cmd.Flags().StringVar(&itemsFile, "items", "", "file of initial items")
	cmd.Flags().StringVar(&inputFormat, "input", "", "items format: json, jsonl, or yaml (default: from extension)")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue after failing operations")
	return cmd
}

func openScript(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return f, func() { f.Close() }, nil
}
