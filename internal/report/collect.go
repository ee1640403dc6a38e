package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Collect reads every artifact in reportsDir, sorted by filename, and builds
// one categorized Item per artifact. Per-item read and decode failures
// degrade to the "Parse Error" category; only a missing artifact directory
// is fatal.
func Collect(reportsDir string) ([]Item, error) {
	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		return nil, fmt.Errorf("reading artifact directory: %w", err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")

		raw, rerr := os.ReadFile(filepath.Join(reportsDir, entry.Name()))
		if rerr != nil {
			items = append(items, Item{
				Contract:   name,
				Category:   CategoryParseError,
				IssueCount: -1,
				Error:      fmt.Sprintf("Error reading file: %v", rerr),
			})
			continue
		}

		payload, perr := ExtractPayload(raw)
		if perr != nil {
			items = append(items, Item{
				Contract:   name,
				Category:   CategoryParseError,
				IssueCount: -1,
				Error:      perr.Error(),
			})
			continue
		}

		item := Item{
			Contract:   name,
			Category:   Categorize(payload),
			IssueCount: len(payload.Issues),
			Payload:    payload,
		}
		if !payload.IssuesValid {
			item.IssueCount = -1
		}
		if payload.Error != nil {
			item.Error = *payload.Error
		}
		items = append(items, item)
	}

	return items, nil
}
