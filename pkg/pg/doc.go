// Package pg connects to PostgreSQL with pgx/v5 and applies goose
// migrations from an fs.FS, typically an embed.FS shipped next to the
// queries that need it.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, history.Migrations, log); err != nil {
//		return err
//	}
//
// Healthcheck returns a probe suitable for httpserver readiness checks.
package pg
