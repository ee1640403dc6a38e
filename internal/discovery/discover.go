// Package discovery enumerates the Solidity contracts eligible for analysis.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// abstractMarker excludes abstract contracts, which Mythril cannot analyze
// standalone.
const abstractMarker = "abstract contract"

// Find walks contractsDir for .sol files and returns the surviving contracts
// sorted by path. Exclusions are applied in order: path-segment patterns,
// filename tokens, then content inspection (abstract contracts and
// interface-named files). Files that cannot be read are skipped rather than
// failing the walk.
func Find(root, contractsDir string, excludeDirs, excludeNames []string) ([]Contract, error) {
	var contracts []Contract

	err := filepath.WalkDir(contractsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory entries are treated as excluded.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".sol" {
			return nil
		}

		relPath, rerr := filepath.Rel(root, path)
		if rerr != nil {
			relPath = path
		}

		if matchesPathPattern(relPath, excludeDirs) {
			return nil
		}

		stem := strings.TrimSuffix(filepath.Base(path), ".sol")
		if matchesNameToken(stem, excludeNames) {
			return nil
		}

		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil
		}
		if strings.Contains(string(content), abstractMarker) {
			return nil
		}
		if isInterfaceName(stem) {
			return nil
		}

		contracts = append(contracts, Contract{
			Name:    stem,
			Path:    path,
			RelPath: relPath,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].Path < contracts[j].Path
	})
	return contracts, nil
}

// matchesPathPattern reports whether any segment of relPath matches an
// exclusion pattern. Wildcards are stripped from the pattern and each segment
// is compared as a substring of the remaining token, so a segment "mocks"
// matches "*/mocks/*". This deliberately over-matches short segment names;
// the behavior is pinned by tests.
func matchesPathPattern(relPath string, patterns []string) bool {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	for _, pattern := range patterns {
		token := strings.ReplaceAll(pattern, "*", "")
		for _, part := range parts {
			if part != "" && strings.Contains(token, part) {
				return true
			}
		}
	}
	return false
}

// matchesNameToken reports whether the bare filename contains any exclusion
// token. Matching is case-sensitive.
func matchesNameToken(stem string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(stem, token) {
			return true
		}
	}
	return false
}

// isInterfaceName reports whether a filename follows the I-prefix interface
// convention: a leading 'I' followed by another capital letter, e.g. IERC20.
// "Iou" does not qualify.
func isInterfaceName(stem string) bool {
	return len(stem) > 1 && stem[0] == 'I' && stem[1] >= 'A' && stem[1] <= 'Z'
}
