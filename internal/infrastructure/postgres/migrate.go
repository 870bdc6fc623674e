package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	goose "github.com/pressly/goose/v3"

	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres/migrations"
)

// MigrateDirection acción de goose sobre el esquema.
type MigrateDirection string

const (
	MigrateUp     MigrateDirection = "up"
	MigrateDown   MigrateDirection = "down"
	MigrateStatus MigrateDirection = "status"
)

// Migrate aplica las migraciones embebidas usando una conexión database/sql sobre el pool.
// out recibe la salida de goose (status); nil la descarta.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir MigrateDirection, out goose.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrate(ctx, db, dir, out)
}

func migrate(ctx context.Context, db *sql.DB, dir MigrateDirection, out goose.Logger) error {
	if out == nil {
		out = goose.NopLogger()
	}
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(out)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	var err error
	switch dir {
	case MigrateUp:
		err = goose.UpContext(ctx, db, ".")
		if errors.Is(err, goose.ErrNoNextVersion) {
			err = nil
		}
	case MigrateDown:
		err = goose.DownContext(ctx, db, ".")
	case MigrateStatus:
		err = goose.StatusContext(ctx, db, ".")
	default:
		return fmt.Errorf("migrate: dirección desconocida %q", dir)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", dir, err)
	}
	return nil
}
