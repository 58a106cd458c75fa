package main

import (
	"github.com/spf13/cobra"

	"sauceDemo/internal/migrations"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции хранилища результатов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrations.Run(a.cfg, a.log)
		},
	}
}
