package mythril

import (
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAnalyzed_SuccessfulArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "Clean.json", `{"success": true, "issues": []}`)
	writeArtifact(t, dir, "Findings.json", `{"success": true, "issues": [{"title": "X"}]}`)
	// Standard mythril output without a success flag counts as analyzed.
	writeArtifact(t, dir, "Raw.json", `{"error": null, "issues": []}`)

	analyzed := Analyzed(dir)
	for _, name := range []string{"Clean", "Findings", "Raw"} {
		if !analyzed[name] {
			t.Errorf("%s should be analyzed", name)
		}
	}
}

func TestAnalyzed_FailureMarkersForceRetry(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "Failed.json", `{"success": false, "error": "x"}`)
	writeArtifact(t, dir, "Errored.json", `{"success": true, "error": "boom", "issues": []}`)
	writeArtifact(t, dir, "Garbage.json", `solc banner text, not json`)

	analyzed := Analyzed(dir)
	if len(analyzed) != 0 {
		t.Fatalf("expected no analyzed contracts, got %v", analyzed)
	}
}

func TestAnalyzed_EmptyErrorStringIsNotAFailure(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "Empty.json", `{"success": true, "error": "", "issues": []}`)

	if !Analyzed(dir)["Empty"] {
		t.Error("empty error string should not force a retry")
	}
}

func TestAnalyzed_IgnoresNonJSONFiles(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "Vault_error.txt", "STDOUT:\n\nSTDERR:\nboom")
	writeArtifact(t, dir, "Vault.json", `{"success": true, "issues": []}`)

	analyzed := Analyzed(dir)
	if len(analyzed) != 1 || !analyzed["Vault"] {
		t.Fatalf("expected only Vault, got %v", analyzed)
	}
}

func TestAnalyzed_MissingDirectoryIsEmpty(t *testing.T) {
	analyzed := Analyzed(filepath.Join(t.TempDir(), "absent"))
	if len(analyzed) != 0 {
		t.Fatalf("expected empty set, got %v", analyzed)
	}
}
