package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mythbatch/internal/config"
	"github.com/blackwell-systems/mythbatch/internal/discovery"
	"github.com/blackwell-systems/mythbatch/internal/mythril"
	"github.com/blackwell-systems/mythbatch/internal/output"
	"github.com/blackwell-systems/mythbatch/internal/report"
)

var (
	runFlagContract  string
	runFlagTimeout   int
	runFlagWorkers   int
	runFlagMaxDepth  int
	runFlagCallDepth int
	runFlagTxCount   int
	runFlagSkipBuild bool
	runFlagForce     bool
	runFlagNoSummary bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compile and analyze contracts in parallel",
	Long: `Run compiles the contract tree (unless --skip-build), discovers eligible
contracts, and analyzes each with Mythril under a fixed-size worker pool and
a per-contract timeout. One JSON artifact is written per contract; contracts
whose artifact already reflects a successful analysis are skipped unless
--force is given. A markdown summary is generated afterwards unless
--no-summary is given.

With --contract, only the named contract file is analyzed.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFlagContract, "contract", "", "Analyze a single contract path (relative to --root)")
	runCmd.Flags().IntVar(&runFlagTimeout, "timeout", config.DefaultTimeout, "Analysis timeout per contract (seconds)")
	runCmd.Flags().IntVar(&runFlagWorkers, "workers", config.DefaultWorkers, "Number of parallel workers")
	runCmd.Flags().IntVar(&runFlagMaxDepth, "max-depth", 0, "Maximum analysis depth")
	runCmd.Flags().IntVar(&runFlagCallDepth, "call-depth-limit", 0, "Maximum call depth")
	runCmd.Flags().IntVarP(&runFlagTxCount, "tx-count", "t", 0, "Number of transactions to analyze")
	runCmd.Flags().BoolVar(&runFlagSkipBuild, "skip-build", false, "Skip contract compilation")
	runCmd.Flags().BoolVar(&runFlagForce, "force", false, "Reanalyze even if results exist")
	runCmd.Flags().BoolVar(&runFlagNoSummary, "no-summary", false, "Skip summary generation")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagRoot, flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p := output.Stdout
	p.Println(output.Banner("mythbatch", appVersion))

	// Build failure is one of only two fatal conditions.
	if !runFlagSkipBuild {
		p.Printf("  %s compiling contracts", output.StyleMuted.Render("▸"))
		if err := mythril.Compile(cfg.Root, cfg.BuildCommand); err != nil {
			return err
		}
		p.Printf("  %s compilation successful", output.StyleSuccess.Render("✓"))
	}

	runner := mythril.New(cfg)
	if cmd.Flags().Changed("timeout") {
		runner.Timeout = runFlagTimeout
	}
	if cmd.Flags().Changed("workers") {
		runner.Workers = runFlagWorkers
	}
	runner.MaxDepth = runFlagMaxDepth
	runner.CallDepthLimit = runFlagCallDepth
	runner.TxCount = runFlagTxCount

	start := time.Now()

	if runFlagContract != "" {
		if err := runFocused(cmd, cfg, runner); err != nil {
			return err
		}
	} else {
		runBatch(cmd, cfg, runner, start)
	}

	// Summary generation failure is reported, never fatal to the batch.
	if !runFlagNoSummary {
		p.Printf("\n  %s generating analysis summary", output.StyleMuted.Render("▸"))
		if _, err := report.Generate(cfg.ReportsDir, cfg.SummaryFile); err != nil {
			p.Printf("  %s summary generation failed: %v", output.StyleError.Render("✗"), err)
		} else {
			p.Printf("  %s summary written to %s", output.StyleSuccess.Render("✓"), cfg.SummaryFile)
		}
	}

	return nil
}

// runFocused analyzes a single contract named on the command line. A missing
// contract path is fatal.
func runFocused(cmd *cobra.Command, cfg *config.Config, runner *mythril.Runner) error {
	path := runFlagContract
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Root, path)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("contract not found: %s", path)
	}

	rel, err := filepath.Rel(cfg.Root, path)
	if err != nil {
		rel = path
	}
	contract := discovery.Contract{
		Name:    strings.TrimSuffix(filepath.Base(path), ".sol"),
		Path:    path,
		RelPath: rel,
	}

	output.Stdout.Printf("\nfocused analysis: %s", rel)
	res := runner.Analyze(cmd.Context(), contract)
	output.Stdout.Printf("\nanalysis completed: %s", res.Status)
	return nil
}

func runBatch(cmd *cobra.Command, cfg *config.Config, runner *mythril.Runner, start time.Time) {
	p := output.Stdout

	contracts, err := discovery.Find(cfg.Root, cfg.ContractsDir, cfg.ExcludeDirs, cfg.ExcludeNames)
	if err != nil {
		// An absent contracts tree yields an empty batch, not a crash.
		p.Printf("  %s discovery failed: %v", output.StyleError.Render("✗"), err)
		return
	}
	p.Printf("\nfound %d contracts to consider", len(contracts))

	results, _ := runner.RunBatch(cmd.Context(), contracts, !runFlagForce)
	if len(results) > 0 {
		renderRunSummary(results, time.Since(start))
	}
}

// renderRunSummary prints the final per-status counts for a batch.
func renderRunSummary(results []mythril.Result, total time.Duration) {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Status]++
	}

	p := output.Stdout
	p.Println(output.Section("Analysis Summary"))
	p.Println()
	line := func(label string, value string) {
		p.Printf(" %s %s", output.StyleLabel.Render(label), output.StyleValue.Render(value))
	}
	line("Total analyzed:", fmt.Sprintf("%d", len(results)))
	line("Successful:", fmt.Sprintf("%d", counts[mythril.StatusSuccess]))
	line("Errors:", fmt.Sprintf("%d", counts[mythril.StatusError]))
	line("Timeouts:", fmt.Sprintf("%d", counts[mythril.StatusTimeout]))
	if n := counts[mythril.StatusException] + counts[mythril.StatusFailed]; n > 0 {
		line("Exceptions:", fmt.Sprintf("%d", n))
	}
	line("Total time:", fmt.Sprintf("%.1fs", total.Seconds()))
}
