// Package migrations embeds the goose migration scripts so tooling can
// apply them without depending on a checkout-relative path.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
