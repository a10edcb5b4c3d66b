package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bakewatt/bakewatt/app"
	"github.com/bakewatt/bakewatt/config"
	"github.com/bakewatt/bakewatt/infra/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:     "bakewatt",
	Short:   "Baking advisor for wholesale electricity prices",
	Version: version,
	RunE:    run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath(), "configuration file")
}

// defaultConfigPath honors BAKEWATT_CONFIG so deployments can relocate the
// config without passing the flag.
func defaultConfigPath() string {
	if p := os.Getenv("BAKEWATT_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
