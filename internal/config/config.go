package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the top-level mythbatch configuration. All paths are resolved
// against the repository root by Load.
type Config struct {
	Root         string   `mapstructure:"-"`
	ContractsDir string   `mapstructure:"contracts_dir"`
	ReportsDir   string   `mapstructure:"reports_dir"`
	SummaryFile  string   `mapstructure:"summary_file"`
	MythrilBin   string   `mapstructure:"mythril_bin"`
	SolcVersion  string   `mapstructure:"solc_version"`
	SolcConfig   string   `mapstructure:"solc_config"`
	BuildCommand []string `mapstructure:"build_command"`
	Workers      int      `mapstructure:"workers"`
	Timeout      int      `mapstructure:"timeout"`
	ExcludeDirs  []string `mapstructure:"exclude_dirs"`
	ExcludeNames []string `mapstructure:"exclude_names"`
	Output       Output   `mapstructure:"output"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Load reads configuration for the repository rooted at root. cfgFile
// overrides the default lookup of .mythbatch.yaml in the repo root. A missing
// config file is not an error; defaults apply.
func Load(root, cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("contracts_dir", DefaultContractsDir)
	v.SetDefault("reports_dir", DefaultReportsDir)
	v.SetDefault("summary_file", DefaultSummaryFile)
	v.SetDefault("mythril_bin", DefaultMythrilBin)
	v.SetDefault("solc_version", DefaultSolcVersion)
	v.SetDefault("solc_config", DefaultSolcConfig)
	v.SetDefault("build_command", DefaultBuildCommand)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("exclude_dirs", DefaultExcludeDirs)
	v.SetDefault("exclude_names", DefaultExcludeNames)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(root)
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	cfg.Root = abs
	cfg.ContractsDir = cfg.resolve(cfg.ContractsDir)
	cfg.ReportsDir = cfg.resolve(cfg.ReportsDir)
	cfg.SummaryFile = cfg.resolve(cfg.SummaryFile)
	cfg.SolcConfig = cfg.resolve(cfg.SolcConfig)

	return &cfg, nil
}

// resolve anchors a relative path at the repo root.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}
