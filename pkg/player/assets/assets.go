package assets

import "embed"

// TemplateName is the page template holding the %@ parameters placeholder.
const TemplateName = "player.html"

//go:embed player.html
var FS embed.FS
