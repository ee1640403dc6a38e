package mythril

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/blackwell-systems/mythbatch/internal/config"
	"github.com/blackwell-systems/mythbatch/internal/discovery"
	"github.com/blackwell-systems/mythbatch/internal/output"
)

// graceDefault is the extra wall-clock allowance beyond the analysis budget
// so Mythril can tear down before the hard kill.
const graceDefault = 30 * time.Second

// Runner invokes Mythril for individual contracts and batches.
type Runner struct {
	Root        string
	ReportsDir  string
	Bin         string
	SolcVersion string
	SolcConfig  string

	// Timeout is the per-contract analysis budget in seconds, passed to
	// Mythril as --execution-timeout and enforced as a hard process
	// deadline at Timeout+Grace.
	Timeout int

	// Grace extends the hard deadline beyond Timeout. Zero means the
	// default teardown allowance.
	Grace time.Duration

	// Optional exploration tuning; zero means not passed to Mythril.
	MaxDepth       int
	CallDepthLimit int
	TxCount        int

	// Workers bounds batch concurrency.
	Workers int

	// Printer receives progress lines; nil means the shared stdout printer.
	Printer *output.Printer
}

// New builds a Runner from configuration.
func New(cfg *config.Config) *Runner {
	return &Runner{
		Root:        cfg.Root,
		ReportsDir:  cfg.ReportsDir,
		Bin:         cfg.MythrilBin,
		SolcVersion: cfg.SolcVersion,
		SolcConfig:  cfg.SolcConfig,
		Timeout:     cfg.Timeout,
		Workers:     cfg.Workers,
	}
}

func (r *Runner) printer() *output.Printer {
	if r.Printer != nil {
		return r.Printer
	}
	return output.Stdout
}

func (r *Runner) grace() time.Duration {
	if r.Grace > 0 {
		return r.Grace
	}
	return graceDefault
}

// args builds the Mythril command line for one contract.
func (r *Runner) args(c discovery.Contract) []string {
	args := []string{
		"analyze", c.Path,
		"--execution-timeout", strconv.Itoa(r.Timeout),
		"--solv", r.SolcVersion,
		"--solc-json", r.SolcConfig,
		"-o", "json",
	}
	if r.MaxDepth > 0 {
		args = append(args, "--max-depth", strconv.Itoa(r.MaxDepth))
	}
	if r.CallDepthLimit > 0 {
		args = append(args, "--call-depth-limit", strconv.Itoa(r.CallDepthLimit))
	}
	if r.TxCount > 0 {
		args = append(args, "-t", strconv.Itoa(r.TxCount))
	}
	return args
}

// Analyze runs Mythril for a single contract. Exactly one artifact file
// exists for the contract afterwards, whatever the outcome: raw stdout on
// process exit (zero or not), or a synthesized failure record on timeout or
// invocation error. Non-zero exits additionally persist a stderr diagnostic
// next to the artifact.
func (r *Runner) Analyze(ctx context.Context, c discovery.Contract) Result {
	outputFile := filepath.Join(r.ReportsDir, c.Name+".json")
	_ = os.MkdirAll(r.ReportsDir, 0o755)

	r.printer().Printf("  %s analyzing %s", output.StyleMuted.Render("▸"), c.RelPath)

	cctx, cancel := context.WithTimeout(ctx, time.Duration(r.Timeout)*time.Second+r.grace())
	defer cancel()

	cmd := exec.CommandContext(cctx, r.Bin, r.args(c)...)
	cmd.Dir = r.Root
	// Stop waiting on inherited pipes shortly after the hard kill, in case
	// Mythril leaves a child process holding stdout open.
	cmd.WaitDelay = r.grace()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Contract:   c.Name,
		Path:       c.RelPath,
		Duration:   elapsed,
		OutputFile: r.relToRoot(outputFile),
	}

	switch {
	case cctx.Err() == context.DeadlineExceeded:
		res.Status = StatusTimeout
		res.Duration = time.Duration(r.Timeout) * time.Second
		msg := fmt.Sprintf("Analysis timed out after %d seconds", r.Timeout)
		r.writeFailureRecord(outputFile, msg)
		r.printer().Printf("  %s %s (>%ds)",
			output.StyleWarning.Render("⏱ timeout"), c.Name, r.Timeout)

	case runErr == nil:
		res.Status = StatusSuccess
		_ = os.WriteFile(outputFile, stdout.Bytes(), 0o644)
		r.printSuccess(c.Name, stdout.Bytes(), elapsed)

	default:
		if _, ok := runErr.(*exec.ExitError); ok {
			// Tool-reported failure: stdout is still the artifact so
			// failed-but-parseable output is preserved.
			res.Status = StatusError
			_ = os.WriteFile(outputFile, stdout.Bytes(), 0o644)
			if stderr.Len() > 0 {
				diag := fmt.Sprintf("STDOUT:\n%s\n\nSTDERR:\n%s", stdout.String(), stderr.String())
				_ = os.WriteFile(filepath.Join(r.ReportsDir, c.Name+"_error.txt"), []byte(diag), 0o644)
			}
			r.printer().Printf("  %s %s (%.1fs)",
				output.StyleError.Render("✗ error"), c.Name, elapsed.Seconds())
		} else {
			// Spawn or runtime failure, e.g. the executable is missing.
			res.Status = StatusException
			res.Duration = 0
			res.Err = runErr.Error()
			r.writeFailureRecord(outputFile, fmt.Sprintf("Exception during analysis: %s", runErr))
			r.printer().Printf("  %s %s: %s",
				output.StyleError.Render("✗ exception"), c.Name, runErr)
		}
	}

	return res
}

// printSuccess reports a zero-exit analysis, counting issues when the output
// parses. A parse failure here only changes the status line, never the
// artifact.
func (r *Runner) printSuccess(name string, raw []byte, elapsed time.Duration) {
	var payload struct {
		Issues []any `json:"issues"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		r.printer().Printf("  %s %s (no parsable output, %.1fs)",
			output.StyleSuccess.Render("✓ success"), name, elapsed.Seconds())
		return
	}
	if n := len(payload.Issues); n > 0 {
		r.printer().Printf("  %s %s (%d issues, %.1fs)",
			output.StyleWarning.Render("! success"), name, n, elapsed.Seconds())
		return
	}
	r.printer().Printf("  %s %s (%.1fs)",
		output.StyleSuccess.Render("✓ success"), name, elapsed.Seconds())
}

// writeFailureRecord persists a synthesized artifact for outcomes that
// produced no tool output.
func (r *Runner) writeFailureRecord(path, msg string) {
	rec := failureRecord{Success: false, Error: msg, Issues: []any{}}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

func (r *Runner) relToRoot(path string) string {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil {
		return path
	}
	return rel
}
