// Package cli implements the collection command-line interface: root command
// structure, global flags, exit codes, and output modes.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/collection/internal/itemio"
	"github.com/mesh-intelligence/collection/internal/script"
	"github.com/mesh-intelligence/collection/pkg/collection"
	"github.com/mesh-intelligence/collection/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// ErrInvalidItems is returned by check when at least one item is rejected.
var ErrInvalidItems = errors.New("items rejected by value type")

// app holds global flag values and the state every subcommand shares.
type app struct {
	configDir string
	valueType string
	format    string
	verbose   bool

	cfg    types.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "collection" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	root := &cobra.Command{
		Use:     "collection",
		Short:   "Build and inspect typed collections",
		Long:    "Collection loads items into a typed collection, validates them against a\ndeclared value type, and runs scripted collection operations.",
		Version: collection.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
			cfg, err := loadConfig(a.configDir, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger.Debug("config loaded", "value_type", cfg.ValueType, "format", cfg.Format)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVarP(&a.valueType, "type", "t", "", "declared value type, e.g. integer, string, array")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", types.FormatJSON, "output format: json, yaml, or table")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newKindsCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newRunCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "collection:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to exitUserError when the input was at fault and
// exitSysError otherwise.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	userErrors := []error{
		types.ErrTypeMismatch,
		types.ErrIndexNotFound,
		types.ErrUnknownValueType,
		types.ErrValueTypeEmpty,
		types.ErrFormatUnknown,
		itemio.ErrInputFormat,
		script.ErrUnknownOp,
		script.ErrUsage,
		ErrInvalidItems,
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// newLogger returns a text logger on w at debug level when verbose is set
// and warn level otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newCollection validates the loaded config and builds a collection of the
// configured value type from items.
func (a *app) newCollection(items []any) (*collection.TypedCollection, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	vt, err := types.ParseValueType(a.cfg.ValueType)
	if err != nil {
		return nil, err
	}
	c, err := collection.New(vt, items...)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	a.logger.Debug("collection built", "value_type", vt.Name(), "basic", vt.IsBasic(), "count", c.Count())
	return c, nil
}
