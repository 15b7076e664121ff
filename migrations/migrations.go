package migrations

import "embed"

// FS embeds the SQL migration files in this directory. The
// golang-migrate iofs driver reads them when applying migrations
// at startup.
//
//go:embed *.sql
var FS embed.FS

const Version = 1
