// Package static embeds the console's stylesheet.
package static

import "embed"

//go:embed *.css
var FS embed.FS
