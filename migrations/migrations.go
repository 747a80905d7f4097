// Package migrations embeds the SQL migration files for the wishlist service.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
