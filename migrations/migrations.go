// Package migrations embeds the goose SQL migrations, one directory per
// supported dialect.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Embed embed.FS
