// Package migrations embeds the ordered schema migration list. Migrations
// are strictly additive: later versions only add collections, columns, or
// indexes, never drop what an earlier version created.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
