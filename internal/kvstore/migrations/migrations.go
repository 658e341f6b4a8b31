// Package migrations embeds the SQL migrations for the blob store schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
