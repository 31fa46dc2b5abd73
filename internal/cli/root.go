// Package cli provides the command-line interface for trustset.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sufield/trustset/internal/config"
)

var cfg *config.Config

// Execute builds a fresh command tree and runs it. Building per invocation
// keeps flag state from leaking between runs.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trustset",
		Short: "Query explicit certificate trust settings",
		Long: `Query explicit certificate trust settings.

trustset enumerates a trust-settings store and reports which certificates the
administrator or user has explicitly marked as trusted roots or explicitly
denied, reproducing the upstream trust authority's matching semantics.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().String("store", "", "Path to the YAML trust-settings document")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	rootCmd.MarkPersistentFlagFilename("store", "yaml", "yml")

	rootCmd.AddCommand(newEnumerateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	// version works without a store
	if cmd.Name() == "version" {
		return nil
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return err
	}
	bindFlag(v, cmd, "store_path", "store")
	bindFlag(v, cmd, "log_level", "log-level")

	cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	return nil
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		v.Set(key, f.Value.String())
	}
}
