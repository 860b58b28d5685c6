package app

import "embed"

// migrationFS embeds the schema migrations applied at startup when
// database.migrate is enabled.
//
//go:embed migrations/*.sql
var migrationFS embed.FS
