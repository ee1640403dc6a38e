package mythril

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/mythbatch/internal/discovery"
	"github.com/blackwell-systems/mythbatch/internal/output"
)

// RunBatch analyzes contracts under the runner's worker limit and returns the
// completed results plus the number of contracts skipped as already analyzed.
// Completion order is unspecified; each contract owns a disjoint artifact
// path so workers never contend on a file.
//
// A panic escaping a worker is converted into a "failed" record without
// aborting sibling workers. Running two instances of the program against the
// same reports directory is the caller's hazard; nothing here locks across
// processes.
func (r *Runner) RunBatch(ctx context.Context, contracts []discovery.Contract, skipAnalyzed bool) ([]Result, int) {
	skipped := 0
	if skipAnalyzed {
		done := Analyzed(r.ReportsDir)
		var pending []discovery.Contract
		for _, c := range contracts {
			if !done[c.Name] {
				pending = append(pending, c)
			}
		}
		skipped = len(contracts) - len(pending)
		if skipped > 0 {
			r.printer().Printf("%s skipping %d already analyzed contracts",
				output.StyleMuted.Render("»"), skipped)
		}
		contracts = pending
	}

	if len(contracts) == 0 {
		r.printer().Printf("%s all contracts already analyzed",
			output.StyleSuccess.Render("✓"))
		return nil, skipped
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	r.printer().Printf("starting analysis of %d contracts with %d workers", len(contracts), workers)

	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(contracts))
	)

	var g errgroup.Group
	g.SetLimit(workers)
	for _, c := range contracts {
		c := c
		g.Go(func() error {
			defer func() {
				if p := recover(); p != nil {
					r.printer().Printf("  %s %s: %v",
						output.StyleError.Render("✗ failed"), c.Name, p)
					mu.Lock()
					results = append(results, Result{
						Contract: c.Name,
						Path:     c.RelPath,
						Status:   StatusFailed,
						Err:      fmt.Sprint(p),
					})
					mu.Unlock()
				}
			}()
			res := r.Analyze(ctx, c)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results, skipped
}
