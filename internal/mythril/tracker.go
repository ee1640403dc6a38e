package mythril

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Analyzed returns the set of contract names whose artifact reflects a
// completed analysis. The decision is a function of artifact content, not
// mere existence: artifacts that fail a strict decode, carry an explicit
// success=false flag, or carry a non-null error are eligible for retry.
//
// Unlike the aggregator this uses a strict full-content decode; a truly
// successful artifact is expected to be well-formed JSON.
func Analyzed(reportsDir string) map[string]bool {
	analyzed := make(map[string]bool)

	entries, err := os.ReadDir(reportsDir)
	if err != nil {
		return analyzed
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(reportsDir, entry.Name()))
		if err != nil {
			continue
		}

		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			continue
		}

		if m, ok := decoded.(map[string]any); ok {
			if success, ok := m["success"].(bool); ok && !success {
				continue
			}
			if errVal, ok := m["error"]; ok && errVal != nil {
				// An empty error string does not mark a failure.
				if s, isStr := errVal.(string); !isStr || s != "" {
					continue
				}
			}
		}

		analyzed[name] = true
	}

	return analyzed
}
