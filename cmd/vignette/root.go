package main

import (
	"fmt"
	"os"

	"github.com/aretw0/vignette/internal/cli"
	"github.com/aretw0/vignette/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vignette",
	Short: "vignette stages short scenes from a handful of keywords",
	Long: `vignette resolves semantic elements against a catalog of action blocks,
lays them out on a collision-free stage grid and plays the result on a host.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Project config file")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file or directory of block documents (default: built-in)")
	rootCmd.PersistentFlags().String("scenery", "", "Scenery file (default: built-in scenes)")
	rootCmd.PersistentFlags().String("assets", "", "Asset registry file")
	rootCmd.PersistentFlags().String("store", "", "Script store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Disable logging")
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"catalog":   &cfg.Catalog,
		"scenery":   &cfg.Scenery,
		"assets":    &cfg.Assets,
		"store":     &cfg.Store.Backend,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	return cfg, cfg.Validate()
}

// setup loads the config and builds the command environment.
func setup(cmd *cobra.Command) (*cli.Environment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	logger, err := cli.NewLogger(cfg.LogLevel, quiet)
	if err != nil {
		return nil, err
	}
	return cli.NewEnvironment(cmd.Context(), cfg, logger)
}
