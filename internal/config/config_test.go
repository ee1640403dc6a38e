package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root, "")
	require.NoError(t, err)

	require.Equal(t, filepath.Join(root, "contracts"), cfg.ContractsDir)
	require.Equal(t, filepath.Join(root, "reports", "mythril"), cfg.ReportsDir)
	require.Equal(t, filepath.Join(root, "reports", "mythril_summary.md"), cfg.SummaryFile)
	require.Equal(t, filepath.Join(root, "mythril-config.json"), cfg.SolcConfig)
	require.Equal(t, "myth", cfg.MythrilBin)
	require.Equal(t, "0.8.20", cfg.SolcVersion)
	require.Equal(t, DefaultWorkers, cfg.Workers)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultBuildCommand, cfg.BuildCommand)
	require.Equal(t, DefaultExcludeDirs, cfg.ExcludeDirs)
	require.Equal(t, DefaultExcludeNames, cfg.ExcludeNames)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	root := t.TempDir()
	yaml := `contracts_dir: src
workers: 8
timeout: 300
mythril_bin: /opt/myth/bin/myth
exclude_names:
  - Mock
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".mythbatch.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)

	require.Equal(t, filepath.Join(root, "src"), cfg.ContractsDir)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, 300, cfg.Timeout)
	require.Equal(t, "/opt/myth/bin/myth", cfg.MythrilBin)
	require.Equal(t, []string{"Mock"}, cfg.ExcludeNames)
	// Untouched keys keep their defaults.
	require.Equal(t, filepath.Join(root, "reports", "mythril"), cfg.ReportsDir)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workers: 2\n"), 0o644))

	cfg, err := Load(root, cfgPath)
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Workers)
}

func TestLoad_AbsolutePathsStayAbsolute(t *testing.T) {
	root := t.TempDir()
	reports := t.TempDir()
	yaml := "reports_dir: " + reports + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".mythbatch.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(root, "")
	require.NoError(t, err)
	require.Equal(t, reports, cfg.ReportsDir)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".mythbatch.yaml"), []byte(":\t not yaml ["), 0o644))

	_, err := Load(root, "")
	require.Error(t, err)
}
