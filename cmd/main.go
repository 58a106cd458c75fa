package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sauceDemo/internal/config"
	"sauceDemo/internal/logger"
)

// app хранит общее состояние команд, заполняется в PersistentPreRunE.
type app struct {
	cfg *config.Cfg
	log *logger.Zap

	browserName string
	headless    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, _ := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "saucedemo",
		Short:         "Сквозные тесты магазина Swag Labs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.browserName, "browser", "", "chromium, chrome, firefox или webkit (перекрывает BROWSER)")
	root.PersistentFlags().BoolVar(&a.headless, "headless", false, "запуск без окна (перекрывает PW_HEADLESS)")

	root.AddCommand(newRunCmd(a), newMigrateCmd(a), newRunsCmd(a), newShowCmd(a))
	return root, a
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("browser") {
		cfg.Browser.Name = strings.ToLower(a.browserName)
	}
	if flags.Changed("headless") {
		cfg.Browser.Headless = a.headless
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var opts []logger.Option
	if cfg.Logger.File != "" {
		opts = append(opts, logger.WithFile(cfg.Logger.File))
	}
	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level, opts...)
	if err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.cfg = cfg
	a.log = log
	a.log.Debug("Конфигурация загружена",
		zap.String("browser", cfg.Browser.Name),
		zap.Bool("headless", cfg.Browser.Headless),
		zap.String("url", cfg.App.BaseURL))
	return nil
}
