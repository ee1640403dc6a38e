package mythril

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/mythbatch/internal/discovery"
)

// countingScript emits a clean result and appends one line per invocation to
// invocations.log in the runner's working directory.
const countingScript = `echo run >> invocations.log
echo '{"success": true, "issues": []}'`

func invocationCount(t *testing.T, r *Runner) int {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.Root, "invocations.log"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(strings.Split(strings.TrimSpace(string(data)), "\n"))
}

func batchContracts(r *Runner, names ...string) []discovery.Contract {
	contracts := make([]discovery.Contract, len(names))
	for i, name := range names {
		contracts[i] = testContract(r, name)
	}
	return contracts
}

func TestRunBatch_AnalyzesAllContracts(t *testing.T) {
	scripts := t.TempDir()
	r := testRunner(t, fakeMyth(t, scripts, countingScript))
	contracts := batchContracts(r, "Alpha", "Bravo", "Charlie")

	results, skipped := r.RunBatch(context.Background(), contracts, true)

	if skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", skipped)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Status != StatusSuccess {
			t.Errorf("%s: expected success, got %s", res.Contract, res.Status)
		}
	}
	if n := invocationCount(t, r); n != 3 {
		t.Errorf("expected 3 invocations, got %d", n)
	}
}

// Re-running in skip mode with no source changes must perform zero external
// invocations.
func TestRunBatch_SkipModeIsIdempotent(t *testing.T) {
	scripts := t.TempDir()
	r := testRunner(t, fakeMyth(t, scripts, countingScript))
	contracts := batchContracts(r, "Alpha", "Bravo")

	first, _ := r.RunBatch(context.Background(), contracts, true)
	if len(first) != 2 {
		t.Fatalf("first run: expected 2 results, got %d", len(first))
	}

	second, skipped := r.RunBatch(context.Background(), contracts, true)
	if len(second) != 0 {
		t.Errorf("second run: expected 0 results, got %d", len(second))
	}
	if skipped != 2 {
		t.Errorf("second run: expected 2 skipped, got %d", skipped)
	}
	if n := invocationCount(t, r); n != 2 {
		t.Errorf("second run must not invoke the tool again, got %d invocations", n)
	}
}

// Failed artifacts do not count as analyzed and are retried.
func TestRunBatch_RetriesFailedArtifacts(t *testing.T) {
	scripts := t.TempDir()
	r := testRunner(t, fakeMyth(t, scripts, countingScript))

	if err := os.MkdirAll(r.ReportsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeArtifact(t, r.ReportsDir, "Alpha.json", `{"success": false, "error": "timed out", "issues": []}`)

	results, skipped := r.RunBatch(context.Background(), batchContracts(r, "Alpha"), true)
	if skipped != 0 || len(results) != 1 {
		t.Fatalf("failed artifact should be retried: results=%d skipped=%d", len(results), skipped)
	}
}

func TestRunBatch_ForceReanalyzesEverything(t *testing.T) {
	scripts := t.TempDir()
	r := testRunner(t, fakeMyth(t, scripts, countingScript))
	contracts := batchContracts(r, "Alpha", "Bravo")

	r.RunBatch(context.Background(), contracts, false)
	r.RunBatch(context.Background(), contracts, false)

	if n := invocationCount(t, r); n != 4 {
		t.Errorf("force mode should reinvoke every contract, got %d invocations", n)
	}
}

// A worker failure is recorded without aborting sibling workers.
func TestRunBatch_WorkerFailureIsIsolated(t *testing.T) {
	scripts := t.TempDir()
	script := `case "$2" in
  *Bad*) echo 'fatal' >&2; exit 2 ;;
  *) echo '{"success": true, "issues": []}' ;;
esac`
	r := testRunner(t, fakeMyth(t, scripts, script))

	results, _ := r.RunBatch(context.Background(), batchContracts(r, "Good", "Bad", "Fine"), true)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	byName := make(map[string]string)
	for _, res := range results {
		byName[res.Contract] = res.Status
	}
	if byName["Bad"] != StatusError {
		t.Errorf("Bad: expected error, got %s", byName["Bad"])
	}
	if byName["Good"] != StatusSuccess || byName["Fine"] != StatusSuccess {
		t.Errorf("siblings must complete: %v", byName)
	}
}
