// Package cmd wires the access-review CLI: configuration loading, logger
// initialization, and the report generation command.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/seceng-tools/access-review/internal/config"
	"github.com/seceng-tools/access-review/internal/observability"
)

var cfgFile string

// ctxKey is the private type for values this package stores on the command
// context.
type ctxKey int

const configKey ctxKey = iota

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "access-review",
	Short: "Generates narrative security reports from AWS access review findings.",
	Long: `access-review turns structured security findings into a human-readable
report narrative using a Bedrock-hosted model, with a deterministic local
fallback when the model is unavailable, plus a detailed CSV report.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		if err := initializeConfig(); err != nil {
			return err
		}

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			observability.InitializeLogger(config.LoggerConfig{
				Level: "info", Format: "console", ServiceName: "access-review",
			})
			return err
		}

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Info("Starting access-review", zap.String("version", Version))

		cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
		return nil
	},
}

// getConfigFromContext retrieves the resolved configuration placed on the
// command context by PersistentPreRunE (or by a test).
func getConfigFromContext(ctx context.Context) (config.Config, error) {
	cfg, ok := ctx.Value(configKey).(config.Config)
	if !ok {
		return config.Config{}, fmt.Errorf("configuration not found in command context")
	}
	return cfg, nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(newReportCmd(&defaultInvokerProvider{}))
}

// initializeConfig reads in the config file and environment variables.
func initializeConfig() error {
	v := viper.GetViper()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ACCESS_REVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}
