package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"migration-coverage/internal/config"
)

// newRootCommand wires flags, environment and config for one invocation.
func newRootCommand() *cobra.Command {
	var v *viper.Viper
	logger := logrus.New()

	cmd := &cobra.Command{
		Use:   "migration-coverage",
		Short: "Report per-directory coverage of a file extension migration",
		Long: `Scans the current directory, classifies source files into the legacy and
target extension families, and reports for every directory the share of
target files in its subtree.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(v, logger)

			root, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			return runScan(cmd.Context(), root, cfg, cmd.OutOrStdout(), logger)
		},
	}

	flags := cmd.Flags()
	flags.String("config", config.DefaultFileName, "Config file path")
	flags.StringP("output", "o", "", "Report output directory (default from config)")
	flags.IntP("workers", "w", runtime.NumCPU()*2, "Maximum concurrent filesystem calls")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "Output logs in JSON format")

	v = bindFlags(flags)

	return cmd
}

// bindFlags resolves each flag from the command line first, then from
// MIGRATION_COVERAGE_* environment variables.
func bindFlags(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("MIGRATION_COVERAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
	return v
}

// loadConfig reads the config file, then applies flag and environment
// overrides. Flags left at their defaults do not count as set.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.LoadConfig(v.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v.IsSet("output") && v.GetString("output") != "" {
		cfg.OutputDir = v.GetString("output")
	}
	if v.IsSet("workers") {
		cfg.Workers = v.GetInt("workers")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(v *viper.Viper, logger *logrus.Logger) {
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", v.GetString("log-level"))
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if v.GetBool("log-json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
