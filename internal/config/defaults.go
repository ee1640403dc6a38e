// Package config provides configuration loading and defaults for mythbatch.
package config

// DefaultContractsDir is the contracts tree relative to the repo root.
const DefaultContractsDir = "contracts"

// DefaultReportsDir holds one JSON artifact per analyzed contract.
const DefaultReportsDir = "reports/mythril"

// DefaultSummaryFile is where the rendered markdown summary is written.
const DefaultSummaryFile = "reports/mythril_summary.md"

// DefaultMythrilBin is the Mythril executable name.
const DefaultMythrilBin = "myth"

// DefaultSolcVersion is the solc version pin passed to Mythril.
const DefaultSolcVersion = "0.8.20"

// DefaultSolcConfig is the Mythril solc remapping file relative to the repo root.
const DefaultSolcConfig = "mythril-config.json"

// DefaultConfigName is the config file searched for in the repo root.
const DefaultConfigName = ".mythbatch"

// DefaultWorkers is the number of parallel analysis workers.
const DefaultWorkers = 4

// DefaultTimeout is the per-contract analysis budget in seconds.
const DefaultTimeout = 120

// DefaultBuildCommand compiles the contracts before analysis.
var DefaultBuildCommand = []string{"yarn", "hardhat", "compile"}

// DefaultExcludeDirs are glob-style path patterns whose directories are never
// analyzed. Matching strips the wildcards and compares each path segment as a
// substring of the remaining token.
var DefaultExcludeDirs = []string{
	"*/mocks/*",
	"*/testing/*",
	"*/dependencies/*",
	"*/dlend/*",
	"*/interface/*",
	"*/interfaces/*",
}

// DefaultExcludeNames are case-sensitive filename tokens marking mock, test,
// and fake contracts.
var DefaultExcludeNames = []string{"Mock", "mock", "Test", "test", "Fake", "fake"}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
