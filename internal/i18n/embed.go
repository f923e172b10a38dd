package i18n

import "embed"

//go:embed locales/*.json
var embeddedLocales embed.FS
