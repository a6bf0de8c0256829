// Package migrations embeds the SQL schema migrations applied by storefrontctl and the integration tests.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS
