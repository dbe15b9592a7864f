// Package gamedata provides the embedded monster/item templates and
// floor-scaled spawn tables, with utilities for loading them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
