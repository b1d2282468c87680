// Package assets embeds the static browser client served at /play.
package assets

import "embed"

//go:embed static
var FS embed.FS
