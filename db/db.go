// Package db embeds the SQL migrations shipped with modelgate.
package db

import "embed"

// Migrations holds the schema migration files, applied by
// "modelgatectl db migrate" via golang-migrate.
//
//go:embed migrations/*.sql
var Migrations embed.FS
