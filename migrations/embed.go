// Package migrations holds the versioned schema files applied by
// internal/database/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
