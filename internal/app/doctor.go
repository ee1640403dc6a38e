package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/mythbatch/internal/config"
	"github.com/blackwell-systems/mythbatch/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the analysis setup is healthy",
	Long: `Run a series of health checks against the repository and toolchain:
Mythril binary, build tool, contracts tree, solc remapping config, and the
reports directory. Prints a pass/fail line for each check and a summary.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagRoot, flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	checks := []doctorCheck{
		checkBinary("Mythril binary", cfg.MythrilBin),
		checkDir("Contracts directory", cfg.ContractsDir),
		checkFile("Solc config", cfg.SolcConfig),
		checkReportsDir(cfg.ReportsDir),
	}
	if len(cfg.BuildCommand) > 0 {
		checks = append(checks, checkBinary("Build tool", cfg.BuildCommand[0]))
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkBinary verifies that an executable is resolvable on PATH.
func checkBinary(name, bin string) doctorCheck {
	path, err := exec.LookPath(bin)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("%q not found on PATH", bin)}
	}
	return doctorCheck{Name: name, Passed: true, Message: path}
}

// checkDir verifies that a path exists and is a directory.
func checkDir(name, path string) doctorCheck {
	info, err := os.Stat(path)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not found: %s", path)}
	}
	if !info.IsDir() {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not a directory: %s", path)}
	}
	return doctorCheck{Name: name, Passed: true, Message: path}
}

// checkFile verifies that a regular file exists.
func checkFile(name, path string) doctorCheck {
	info, err := os.Stat(path)
	if err != nil {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("not found: %s", path)}
	}
	if info.IsDir() {
		return doctorCheck{Name: name, Passed: false, Message: fmt.Sprintf("is a directory: %s", path)}
	}
	return doctorCheck{Name: name, Passed: true, Message: path}
}

// checkReportsDir reports the artifact directory state. A missing directory
// is not a failure; it is created on the first run.
func checkReportsDir(path string) doctorCheck {
	entries, err := os.ReadDir(path)
	if err != nil {
		return doctorCheck{Name: "Reports directory", Passed: true, Message: "not yet created (created on first run)"}
	}
	artifacts := 0
	for _, e := range entries {
		if !e.IsDir() {
			artifacts++
		}
	}
	return doctorCheck{Name: "Reports directory", Passed: true, Message: fmt.Sprintf("%s (%d files)", path, artifacts)}
}
