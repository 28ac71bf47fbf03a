// Package migrations embeds the goose SQL migrations so the migrate command
// can run them from a single binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
