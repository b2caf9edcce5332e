// Package migrations embeds the SQL migration files for the job ledger
// schema. Files follow the NNN_description.up.sql convention and are
// applied in version order; the store records applied versions in the
// schema_migrations table.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
