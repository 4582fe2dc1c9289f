package cmd

import (
	"fmt"
	"os"

	"github.com/XY-Finance/callforge/internal/config"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/XY-Finance/callforge/cmd.Version=1.2.3" .
var Version = "0.3.0"

var (
	cfgDir string
	cfg    *config.Config
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "callforge",
	Short: "Build ABI calldata for arbitrary contract calls, no ABI file needed",
	Long: `callforge — assemble a smart-contract function call piece by piece.

  Declare a function name, add typed parameters (tuples and arrays nest
  arbitrarily), fill in values, and encode the result into spec-correct
  calldata ready for eth_call, a multisig, or a timelock.

The call under construction is kept between invocations; encode it when
every field validates, or discard it and start over.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// CALLFORGE_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("CALLFORGE_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.callforge)")

	// Register all sub-commands.
	rootCmd.AddCommand(
		newCmd,
		addCmd,
		removeCmd,
		updateCmd,
		setCmd,
		showCmd,
		encodeCmd,
		templateCmd,
		selectorCmd,
		discardCmd,
	)
}
