package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sauceDemo/internal/browser"
	"sauceDemo/internal/cli/commands"
	"sauceDemo/internal/database"
	"sauceDemo/internal/fixtures"
	"sauceDemo/internal/migrations"
	"sauceDemo/internal/pages"
	"sauceDemo/internal/report"
	"sauceDemo/internal/runner"
)

func newRunCmd(a *app) *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Прогнать smoke-сценарии против BASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flows, err := selectFlows(only)
			if err != nil {
				return err
			}
			return a.run(cmd, flows)
		},
	}
	cmd.Flags().StringSliceVar(&only, "flow", nil, "запустить только указанные сценарии")
	return cmd
}

func selectFlows(names []string) ([]pages.Flow, error) {
	if len(names) == 0 {
		return pages.SmokeFlows, nil
	}

	byName := make(map[string]pages.Flow, len(pages.SmokeFlows))
	for _, f := range pages.SmokeFlows {
		byName[f.Name] = f
	}

	flows := make([]pages.Flow, 0, len(names))
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("неизвестный сценарий: %s", name)
		}
		flows = append(flows, f)
	}
	return flows, nil
}

func (a *app) run(cmd *cobra.Command, flows []pages.Flow) error {
	ctx := cmd.Context()
	log := a.log.Logger

	data, err := fixtures.Load(a.cfg.App.TestDataPath, log)
	if err != nil {
		return err
	}

	var store report.Store
	if a.cfg.Database.Enabled() {
		if err := migrations.Run(a.cfg, a.log); err != nil {
			return err
		}
		db, err := database.New(a.cfg, a.log)
		if err != nil {
			return err
		}
		defer db.Close(a.log)
		store = database.NewRunRepository(db.DB)
	}

	engine := browser.New(runner.EngineConfig(a.cfg.Browser), log)
	if err := engine.Launch(ctx); err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			log.Warn("Ошибка остановки браузера", zap.Error(err))
		}
	}()

	rec := report.NewRecorder(store, log, report.Options{
		Dir:     a.cfg.App.ScreenshotDir,
		Browser: a.cfg.Browser.Name,
		BaseURL: a.cfg.App.BaseURL,
	})

	summary, err := runner.New(a.cfg, log, rec, runner.FromEngine(engine)).
		Run(ctx, flows, pages.OrderFrom(data))
	if err != nil {
		return err
	}

	commands.PrintSummary(cmd.OutOrStdout(), summary)
	if summary.Failed > 0 {
		return fmt.Errorf("упало сценариев: %d", summary.Failed)
	}
	return nil
}
