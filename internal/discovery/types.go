package discovery

// Contract identifies one Solidity source unit eligible for analysis.
// Contracts are enumerated once at discovery time and never mutated.
type Contract struct {
	// Name is the bare filename without extension, e.g. "Vault".
	// It also names the contract's artifact file (<Name>.json).
	Name string `json:"name"`

	// Path is the absolute path to the source file.
	Path string `json:"path"`

	// RelPath is the path relative to the repository root.
	RelPath string `json:"rel_path"`
}
