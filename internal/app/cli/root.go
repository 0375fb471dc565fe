// Package cli is the nand command-line tree: a slimmed spf13/cobra +
// spf13/viper command set (serve, status) replacing the teacher's
// dev-tool command set (run, stop, logs, tui), which has no analogue
// once the TUI is gone — the NAN control plane is a headless daemon with
// one diagnostic query, not an interactive terminal orchestrator.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"nanhostd/internal/config"
)

var configDir string

// NewRootCommand builds the nand command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Host-side control plane for the Wi-Fi NAN subsystem",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configDir == "" {
				return nil
			}

			// config.Load reads nand.yaml from the working directory, the
			// same convention the teacher's config.Load uses for fuku.yaml;
			// --config points at a directory to search instead.
			return os.Chdir(configDir)
		},
	}

	root.PersistentFlags().StringVar(&configDir, "config", "", fmt.Sprintf("directory containing %s (default: %s)", config.ConfigFile, filepath.Join(".", config.ConfigFile)))

	root.AddCommand(newServeCommand())
	root.AddCommand(newStatusCommand())

	return root
}

// Execute runs the nand command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}
