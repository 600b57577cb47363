// Package db persists consultation sessions, intake profiles and the message
// transcript in Postgres.
package db

import (
	"context"
	"database/sql"

	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the embedded schema: the sessions, profiles and messages
// tables plus their indexes, all created only if absent, so running it on
// every startup is safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	return err
}
