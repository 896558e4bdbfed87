// Package gamedata holds the static battle catalogs: playable characters with
// their growth curves, enemy templates, abilities and items. The tables are
// embedded at build time and can be overridden from a YAML directory.
package gamedata

import "embed"

// dataFS embeds all JSON catalog files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
