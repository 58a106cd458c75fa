package main

import (
	"errors"

	"github.com/spf13/cobra"

	"sauceDemo/internal/cli/commands"
	"sauceDemo/internal/database"
)

var errNoDatabase = errors.New("история прогонов недоступна: не задан DB_HOST")

// withRuns открывает БД на время команды.
func (a *app) withRuns(fn func(h *commands.RunsHandler) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !a.cfg.Database.Enabled() {
			return errNoDatabase
		}
		db, err := database.New(a.cfg, a.log)
		if err != nil {
			return err
		}
		defer db.Close(a.log)

		repo := database.NewRunRepository(db.DB)
		return fn(commands.NewRunsHandler(repo, a.log.Logger, cmd.OutOrStdout()))
	}
}

func newRunsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Последние прогоны",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.withRuns(func(h *commands.RunsHandler) error {
		return h.List(cmd.Context(), limit)
	})
	cmd.Flags().IntVar(&limit, "limit", 20, "сколько прогонов показать")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Тесты одного прогона",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return a.withRuns(func(h *commands.RunsHandler) error {
			return h.Show(c.Context(), args[0])
		})(c, args)
	}
	return cmd
}
