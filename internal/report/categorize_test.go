package report

import "testing"

func payload(raw string, t *testing.T) Payload {
	t.Helper()
	p, err := ExtractPayload([]byte(raw))
	if err != nil {
		t.Fatalf("payload fixture failed to decode: %v", err)
	}
	return p
}

func TestCategorize_Taxonomy(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty payload",
			raw:  `{}`,
			want: CategoryParseError,
		},
		{
			name: "compilation error",
			raw:  `{"success": false, "error": "Solc experienced a fatal error: stack too deep", "issues": []}`,
			want: CategoryCompilationError,
		},
		{
			name: "parser error",
			raw:  `{"success": false, "error": "ParserError: expected ';'", "issues": []}`,
			want: CategoryParserError,
		},
		{
			name: "version mismatch",
			raw:  `{"success": false, "error": "SolidityVersionMismatch: pragma wants 0.7", "issues": []}`,
			want: CategoryVersionMismatch,
		},
		{
			name: "other analysis error",
			raw:  `{"success": false, "error": "unexpected EVM state", "issues": []}`,
			want: CategoryAnalysisError,
		},
		{
			name: "success no issues",
			raw:  `{"success": true, "issues": []}`,
			want: CategorySuccessNoIssues,
		},
		{
			name: "success one issue",
			raw:  `{"success": true, "issues": [{"title": "X", "severity": "High"}]}`,
			want: "Success (1 Issues)",
		},
		{
			name: "success three issues",
			raw:  `{"success": true, "issues": [{}, {}, {}]}`,
			want: "Success (3 Issues)",
		},
		{
			name: "failure without error text",
			raw:  `{"success": false, "issues": []}`,
			want: CategoryUnknown,
		},
		{
			name: "failure with empty error",
			raw:  `{"success": false, "error": "", "issues": []}`,
			want: CategoryUnknown,
		},
		{
			name: "success with non-list issues",
			raw:  `{"success": true, "issues": 42}`,
			want: CategoryUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Categorize(payload(tc.raw, t))
			if got != tc.want {
				t.Errorf("Categorize() = %q, want %q", got, tc.want)
			}
		})
	}
}

// Distinct issue counts are distinct categories for grouping purposes.
func TestSuccessCategory_ParameterizedByCount(t *testing.T) {
	if SuccessCategory(1) == SuccessCategory(2) {
		t.Error("issue counts must produce distinct category labels")
	}
	if SuccessCategory(1) != "Success (1 Issues)" {
		t.Errorf("unexpected label %q", SuccessCategory(1))
	}
}
