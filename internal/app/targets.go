package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mythbatch/internal/config"
	"github.com/blackwell-systems/mythbatch/internal/discovery"
	"github.com/blackwell-systems/mythbatch/internal/mythril"
	"github.com/blackwell-systems/mythbatch/internal/output"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List contracts eligible for analysis",
	Long: `Targets lists the contracts that a batch run would consider, after all
exclusion rules (path patterns, filename tokens, abstract contracts,
interface files), and whether each already has a successful artifact.`,
	RunE: runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

// targetRow is the JSON-serializable view of one eligible contract.
type targetRow struct {
	discovery.Contract
	Analyzed bool `json:"analyzed"`
}

func runTargets(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagRoot, flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	contracts, err := discovery.Find(cfg.Root, cfg.ContractsDir, cfg.ExcludeDirs, cfg.ExcludeNames)
	if err != nil {
		return fmt.Errorf("discovering contracts: %w", err)
	}
	analyzed := mythril.Analyzed(cfg.ReportsDir)

	rows := make([]targetRow, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, targetRow{Contract: c, Analyzed: analyzed[c.Name]})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	fmt.Println(output.Section("Analysis Targets"))
	fmt.Println()

	tbl := output.NewTable("Contract", "Path", "Analyzed")
	pending := 0
	for _, row := range rows {
		state := output.StyleMuted.Render("no")
		if row.Analyzed {
			state = output.StyleSuccess.Render("yes")
		} else {
			pending++
		}
		tbl.AddRow(row.Name, row.RelPath, state)
	}
	tbl.Print()

	fmt.Printf("\n %d contracts, %d pending analysis\n", len(rows), pending)
	return nil
}
