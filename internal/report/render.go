package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// truncateLimit is the character budget for inline error fields. Full error
// text in preformatted blocks is never truncated.
const truncateLimit = 100

// now is swapped out in tests.
var now = time.Now

// TruncateError cuts an error message to max characters with a trailing
// ellipsis marker.
func TruncateError(errMsg string, max int) string {
	if errMsg == "" || len(errMsg) <= max {
		return errMsg
	}
	return errMsg[:max] + "..."
}

// Render produces the markdown summary document for the given items.
func Render(items []Item) string {
	var sb strings.Builder

	sb.WriteString("# Mythril Analysis Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Total contracts analyzed:** %d\n\n", len(items)))

	categories := make(map[string]int)
	grouped := make(map[string][]Item)
	for _, item := range items {
		categories[item.Category]++
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	sortedCategories := make([]string, 0, len(categories))
	for cat := range categories {
		sortedCategories = append(sortedCategories, cat)
	}
	sort.Strings(sortedCategories)

	sb.WriteString("## Overview\n\n")
	for _, cat := range sortedCategories {
		count := categories[cat]
		percentage := float64(count) / float64(len(items)) * 100
		sb.WriteString(fmt.Sprintf("- **%s**: %d contracts (%.1f%%)\n", cat, count, percentage))
	}

	for _, cat := range sortedCategories {
		group := grouped[cat]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Contract < group[j].Contract
		})

		sb.WriteString(fmt.Sprintf("\n## %s\n\n", cat))
		sb.WriteString(fmt.Sprintf("*%d contract(s)*\n\n", len(group)))

		for _, item := range group {
			sb.WriteString(fmt.Sprintf("### %s\n\n", item.Contract))
			renderItem(&sb, item)
		}
	}

	renderRecommendations(&sb, items, categories)

	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("*Report generated on %s*\n", now().Format("2006-01-02 15:04:05")))

	return sb.String()
}

// renderItem writes the category-specific detail block for one contract.
func renderItem(sb *strings.Builder, item Item) {
	switch {
	case strings.HasPrefix(item.Category, "Success"):
		if item.IssueCount == 0 {
			sb.WriteString("✅ **Status**: Analysis completed successfully with no issues found.\n\n")
			return
		}
		sb.WriteString(fmt.Sprintf("⚠️ **Status**: Analysis completed with **%d security issues** found.\n\n", item.IssueCount))
		if len(item.Payload.Issues) > 0 {
			sb.WriteString("**Issues found:**\n")
			for i, issue := range item.Payload.Issues {
				sb.WriteString(fmt.Sprintf("%d. **%s** (Severity: %s)\n", i+1, issue.Title, issue.Severity))
			}
			sb.WriteString("\n")
		}

	case item.Category == CategoryCompilationError,
		item.Category == CategoryParserError,
		item.Category == CategoryVersionMismatch,
		item.Category == CategoryAnalysisError:
		sb.WriteString(fmt.Sprintf("❌ **Status**: %s\n\n", item.Category))
		if item.Error != "" {
			sb.WriteString("**Error Details:**\n```\n")
			sb.WriteString(item.Error)
			sb.WriteString("\n```\n\n")
		}

	case item.Category == CategoryParseError:
		sb.WriteString("❌ **Status**: Failed to parse analysis results\n\n")
		if item.Error != "" {
			sb.WriteString(fmt.Sprintf("**Error**: %s\n\n", TruncateError(item.Error, truncateLimit)))
		}

	default:
		sb.WriteString(fmt.Sprintf("❓ **Status**: %s\n\n", item.Category))
		if item.Error != "" {
			sb.WriteString(fmt.Sprintf("**Details**: %s\n\n", TruncateError(item.Error, truncateLimit)))
		}
	}
}

// renderRecommendations writes the fixed-text recommendations blocks for the
// categories actually present.
func renderRecommendations(sb *strings.Builder, items []Item, categories map[string]int) {
	sb.WriteString("## Recommendations\n\n")

	if n := categories[CategoryCompilationError]; n > 0 {
		sb.WriteString(fmt.Sprintf("### Compilation Issues (%d contracts)\n\n", n))
		sb.WriteString("Several contracts failed to compile. Common issues and solutions:\n\n")
		sb.WriteString("- **Stack too deep errors**: Add `--via-ir` flag when compiling or enable optimizer\n")
		sb.WriteString("- **Missing dependencies**: Ensure all OpenZeppelin contracts are properly installed\n")
		sb.WriteString("- **Version mismatches**: Check Solidity version requirements in pragma statements\n\n")
	}

	if n := categories[CategorySuccessNoIssues]; n > 0 {
		sb.WriteString(fmt.Sprintf("### Successfully Analyzed (%d contracts)\n\n", n))
		sb.WriteString("These contracts compiled and analyzed successfully with no security issues detected by Mythril.\n\n")
	}

	withIssues := 0
	for _, item := range items {
		if strings.HasPrefix(item.Category, "Success (") && item.IssueCount > 0 {
			withIssues++
		}
	}
	if withIssues > 0 {
		sb.WriteString(fmt.Sprintf("### Security Issues Found (%d contracts)\n\n", withIssues))
		sb.WriteString("Review the detailed results above for specific security issues that need attention.\n\n")
	}
}

// Generate collects artifacts from reportsDir, renders the summary, and
// overwrites outPath with it. The rendered document is returned so callers
// can surface it directly.
func Generate(reportsDir, outPath string) (string, error) {
	items, err := Collect(reportsDir)
	if err != nil {
		return "", err
	}

	doc := Render(items)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return doc, fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(doc), 0o644); err != nil {
		return doc, fmt.Errorf("writing summary: %w", err)
	}
	return doc, nil
}
