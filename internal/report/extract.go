package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExtractPayload performs the tolerant decode used for aggregation: it
// locates the first '{' and last '}' in raw and decodes only that substring,
// so banner or log text around the actual JSON payload is ignored. This is
// deliberately looser than the strict decode in completion tracking.
func ExtractPayload(raw []byte) (Payload, error) {
	text := string(raw)

	start := strings.Index(text, "{")
	if start == -1 {
		return Payload{}, errors.New("no JSON content found")
	}
	end := strings.LastIndex(text, "}")
	if end == -1 {
		return Payload{}, errors.New("no valid JSON end found")
	}

	var snippet string
	if end >= start {
		snippet = text[start : end+1]
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(snippet), &m); err != nil {
		return Payload{}, fmt.Errorf("JSON decode error: %v", err)
	}

	return payloadFromMap(m), nil
}

// payloadFromMap converts the loosely-typed decoded object into a Payload
// with explicit optional-field semantics.
func payloadFromMap(m map[string]any) Payload {
	p := Payload{
		Empty:       len(m) == 0,
		IssuesValid: true,
	}

	if success, ok := m["success"].(bool); ok {
		p.Success = success
	}
	if errStr, ok := m["error"].(string); ok {
		p.Error = &errStr
	}

	if v, ok := m["issues"]; ok {
		list, ok := v.([]any)
		if !ok {
			p.IssuesValid = false
			return p
		}
		for _, entry := range list {
			issue := Issue{Title: "Unknown Issue", Severity: "Unknown"}
			if im, ok := entry.(map[string]any); ok {
				if title, ok := im["title"].(string); ok {
					issue.Title = title
				}
				if severity, ok := im["severity"].(string); ok {
					issue.Severity = severity
				}
			}
			p.Issues = append(p.Issues, issue)
		}
	}

	return p
}
