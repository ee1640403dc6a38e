package report

import "strings"

// Categorize assigns a payload to the reporting taxonomy. Rules apply in
// order: empty payloads are parse errors; explicit failures sub-classify by
// error text; successes split by issue count; everything else is Unknown.
func Categorize(p Payload) string {
	switch {
	case p.Empty:
		return CategoryParseError

	case !p.Success && p.Error != nil && *p.Error != "":
		e := *p.Error
		switch {
		case strings.Contains(e, markerSolcFatal):
			return CategoryCompilationError
		case strings.Contains(e, markerParserError):
			return CategoryParserError
		case strings.Contains(e, markerVersionMismatch):
			return CategoryVersionMismatch
		default:
			return CategoryAnalysisError
		}

	case p.Success && !p.IssuesValid:
		return CategoryUnknown

	case p.Success && len(p.Issues) == 0:
		return CategorySuccessNoIssues

	case p.Success:
		return SuccessCategory(len(p.Issues))

	default:
		return CategoryUnknown
	}
}
