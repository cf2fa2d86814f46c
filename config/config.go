package config

import _ "embed"

//go:embed ytview.toml
var YTViewToml []byte
