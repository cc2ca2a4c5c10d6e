package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-linklist/pkg/config"
	"github.com/goliatone/go-linklist/pkg/interfaces/logger"
	"github.com/goliatone/go-linklist/pkg/linklist"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type rootFlags struct {
	configPath string
	driver     string
	dsn        string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "linklist",
		Short:         "Render and manage link lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&flags.driver, "driver", config.DriverSQLite, "storage driver (memory, sqlite)")
	cmd.PersistentFlags().StringVar(&flags.dsn, "dsn", "file:linklist.db", "sqlite data source name")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(
		newRenderCmd(flags),
		newAddCmd(flags),
		newFormCmd(flags),
		newAuthorCmd(flags),
		newCategoryCmd(flags),
		newSeedCmd(flags),
		newFormsCmd(flags),
		newDefaultsCmd(flags),
	)
	return cmd
}

func (f *rootFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	input := map[string]any{}
	if f.configPath != "" {
		raw, err := os.ReadFile(f.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &input); err != nil {
			return config.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	storage, _ := input["storage"].(map[string]any)
	if storage == nil {
		storage = map[string]any{}
	}
	if _, ok := storage["driver"]; !ok || cmd.Flags().Changed("driver") {
		storage["driver"] = f.driver
	}
	if _, ok := storage["dsn"]; !ok || cmd.Flags().Changed("dsn") {
		storage["dsn"] = f.dsn
	}
	input["storage"] = storage
	return config.Load(input)
}

func (f *rootFlags) newLogger() (logger.Logger, func(), error) {
	var (
		z   *zap.Logger
		err error
	)
	if f.verbose {
		z, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.Encoding = "console"
		z, err = cfg.Build()
	}
	if err != nil {
		return nil, nil, err
	}
	return logger.NewZap(z), func() { _ = z.Sync() }, nil
}

// withModule builds the module for one command invocation.
func (f *rootFlags) withModule(cmd *cobra.Command, fn func(context.Context, *linklist.Module) error) error {
	ctx := cmd.Context()
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}
	lgr, sync, err := f.newLogger()
	if err != nil {
		return err
	}
	defer sync()

	module, err := linklist.NewModule(ctx, linklist.ModuleOptions{Config: cfg, Logger: lgr})
	if err != nil {
		return err
	}
	defer module.Close()
	return fn(ctx, module)
}
