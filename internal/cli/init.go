package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and write config.yaml from the current\nflags. An existing config.yaml is left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The value type may be left for later; a set one must resolve.
			validate := a.cfg.ValidateFormat
			if a.cfg.ValueType != "" {
				validate = a.cfg.Validate
			}
			if err := validate(); err != nil {
				return err
			}

			configDir, err := paths.ResolveConfigDir(a.configDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			path := paths.ConfigFile(configDir)
			written, err := writeConfigIfMissing(path, configFile{
				ValueType: a.cfg.ValueType,
				Format:    a.cfg.Format,
			})
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if !written {
				fmt.Fprintf(cmd.OutOrStdout(), "config already exists: %s\n", path)
				return nil
			}
			a.logger.Info("config written", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
