package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abelbrown/techinsights/internal/config"
	"github.com/abelbrown/techinsights/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagOutput   string
	flagLogLevel string
	flagEnvFile  string
)

var rootCmd = &cobra.Command{
	Use:           "techinsights",
	Short:         "Static tech news aggregator",
	Long:          "techinsights fetches RSS and Atom feeds, picks the top stories and writes a static site with weekly archives.",
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "path to config file (default "+config.DefaultConfigPath()+")")
	pf.StringVar(&flagOutput, "output", "", "output directory (default docs)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with TECHINSIGHTS_* overrides")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("techinsights %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// loadConfig resolves the configuration: defaults, YAML file, environment,
// then command-line flags, and initializes logging from the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(flagEnvFile); err != nil {
		return nil, err
	}
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := logging.Init(os.Stderr, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}
