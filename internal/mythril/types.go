// Package mythril drives the external Mythril analyzer over discovered
// contracts: single-contract invocation, bounded-concurrency batches, and
// completion tracking against the artifact directory.
package mythril

import "time"

// Outcome tags for a single analysis. A batch additionally produces "failed"
// for workers whose execution escaped the runner itself.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusTimeout   = "timeout"
	StatusException = "exception"
	StatusFailed    = "failed"
)

// Result records the outcome of analyzing one contract. Created once per
// invocation and never mutated.
type Result struct {
	Contract   string        `json:"contract"`
	Path       string        `json:"path"`
	Status     string        `json:"status"`
	Duration   time.Duration `json:"duration"`
	OutputFile string        `json:"output_file,omitempty"`
	Err        string        `json:"error,omitempty"`
}

// failureRecord is the artifact synthesized when no tool output exists
// (timeout or invocation exception). Field order matches the shape the
// aggregator expects.
type failureRecord struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Issues  []any  `json:"issues"`
}
