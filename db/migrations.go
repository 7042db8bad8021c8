// Package db carries the SQL migrations applied at startup when storage is enabled.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
