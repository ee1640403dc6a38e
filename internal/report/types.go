// Package report aggregates per-contract analysis artifacts into a
// categorized markdown summary.
package report

import "fmt"

// Fixed category labels. Issue-bearing successes use SuccessCategory(n),
// which yields a distinct label per issue count.
const (
	CategoryParseError       = "Parse Error"
	CategoryCompilationError = "Compilation Error"
	CategoryParserError      = "Parser Error"
	CategoryVersionMismatch  = "Version Mismatch"
	CategoryAnalysisError    = "Analysis Error"
	CategorySuccessNoIssues  = "Success (No Issues)"
	CategoryUnknown          = "Unknown"
)

// Error substrings used to sub-classify tool-reported failures.
const (
	markerSolcFatal       = "Solc experienced a fatal error"
	markerParserError     = "ParserError"
	markerVersionMismatch = "SolidityVersionMismatch"
)

// SuccessCategory returns the label for a success with n issues.
func SuccessCategory(n int) string {
	return fmt.Sprintf("Success (%d Issues)", n)
}

// Payload is the decoded analysis artifact, modeled with explicit optional
// fields rather than raw map access. Empty marks an artifact that decoded to
// an empty object; IssuesValid is false when an issues key was present but
// not a list.
type Payload struct {
	Success     bool
	Error       *string
	Issues      []Issue
	Empty       bool
	IssuesValid bool
}

// Issue is one finding from a successful analysis.
type Issue struct {
	Title    string
	Severity string
}

// Item is one contract's categorized aggregation entry. Built transiently
// during aggregation; only the rendered report persists.
type Item struct {
	Contract string
	Category string
	// IssueCount is -1 when not applicable (unparseable artifacts).
	IssueCount int
	Error      string
	Payload    Payload
}
