package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
)

// bootDB carga la configuración y abre el pool de PostgreSQL.
func bootDB(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Aplica, revierte o lista las migraciones del esquema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(postgres.MigrateUp), string(postgres.MigrateDown), string(postgres.MigrateStatus)},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, pool, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		out := log.New(cmd.OutOrStdout(), "", 0)
		return postgres.Migrate(ctx, pool, postgres.MigrateDirection(args[0]), out)
	},
}
