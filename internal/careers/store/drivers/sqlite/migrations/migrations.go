package migrations

import "embed"

// Migrations holds the sqlite schema, applied by golang-migrate through its
// iofs source driver.
//
//go:embed *.sql
var Migrations embed.FS
