package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mythbatch/internal/config"
	"github.com/blackwell-systems/mythbatch/internal/output"
	"github.com/blackwell-systems/mythbatch/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate artifacts into a markdown summary",
	Long: `Report reads every JSON artifact in the reports directory, categorizes
each contract's outcome, and writes a grouped markdown summary with counts,
percentages, and per-contract detail. Artifacts with malformed content are
reported under "Parse Error" rather than aborting the report.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagRoot, flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagJSON {
		items, err := report.Collect(cfg.ReportsDir)
		if err != nil {
			return err
		}
		return renderReportJSON(items)
	}

	doc, err := report.Generate(cfg.ReportsDir, cfg.SummaryFile)
	if err != nil {
		return err
	}

	fmt.Println(doc)
	fmt.Fprintf(os.Stderr, "%s\n", output.StyleMuted.Render("summary written to "+cfg.SummaryFile))
	return nil
}

// reportItem is the JSON-serializable view of one aggregated contract.
type reportItem struct {
	Contract   string `json:"contract"`
	Category   string `json:"category"`
	IssueCount int    `json:"issue_count"`
	Error      string `json:"error,omitempty"`
}

func renderReportJSON(items []report.Item) error {
	out := make([]reportItem, 0, len(items))
	for _, item := range items {
		out = append(out, reportItem{
			Contract:   item.Contract,
			Category:   item.Category,
			IssueCount: item.IssueCount,
			Error:      item.Error,
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
