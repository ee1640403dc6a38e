// Package app contains the Cobra command tree for mythbatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mythbatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagRoot    string
	flagConfig  string
	flagNoColor bool
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "mythbatch",
	Short: "Batch Mythril security analysis for Solidity repositories",
	Long: `mythbatch orchestrates Mythril security analysis across a contract tree.
It discovers eligible contracts, runs Mythril in parallel with per-contract
timeouts, stores one JSON artifact per contract, and compiles the artifacts
into a categorized markdown summary.

Re-runs skip contracts whose artifact already reflects a successful analysis.
Do not run two instances against the same reports directory; artifact writes
are not coordinated across processes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.AutoDetect()
		if flagNoColor {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("mythbatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  run       Compile and analyze contracts in parallel")
		fmt.Println("  report    Aggregate artifacts into a markdown summary")
		fmt.Println("  targets   List contracts eligible for analysis")
		fmt.Println("  doctor    Check whether the analysis setup is healthy")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", ".", "Repository root containing the contract tree")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: <root>/.mythbatch.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
}
