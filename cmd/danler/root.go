package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spicorn/Danler/backdrop"
	"github.com/spicorn/Danler/config"
	"github.com/spicorn/Danler/observability"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "danler",
	Short:         "Danler draws a drifting particle network behind everything else.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(viper.GetViper()); err != nil {
			return err
		}

		loaded, err := config.NewConfigFromViper(viper.GetViper())
		if err != nil {
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "danler"})
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting danler", zap.String("version", Version), zap.String("command", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./danler.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	config.SetDefaults(viper.GetViper())
}

// initializeConfig reads the config file and DANLER_* environment variables.
// A missing default config file is not an error.
func initializeConfig(v *viper.Viper) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("danler")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DANLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// newBackdrop builds a backdrop from the field section of c.
func newBackdrop(c *config.Config, logger *zap.Logger) (*backdrop.Backdrop, error) {
	tuning, err := c.Field.Tuning()
	if err != nil {
		return nil, err
	}
	bcfg := backdrop.Config{Field: tuning, Seed: c.Field.Seed}
	if c.Field.Shapes {
		bcfg.Shapes = backdrop.DefaultShapes()
	}
	if c.Field.Gradients {
		bcfg.Gradients = backdrop.DefaultGradients()
	}
	return backdrop.New(bcfg, logger), nil
}
