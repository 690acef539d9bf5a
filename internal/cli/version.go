package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/pkg/collection"
)

const modulePath = "github.com/mesh-intelligence/collection"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the collection version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "collection v%s\nmodule: %s\n", collection.Version, modulePath)
			return nil
		},
	}
}
