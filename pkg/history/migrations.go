package history

import "embed"

// Migrations holds the goose migrations for PostgresStore.
//
//go:embed migrations/*.sql
var Migrations embed.FS
