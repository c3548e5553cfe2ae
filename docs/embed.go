// Copyright © 2021 The Stax authors

// Package docs embeds the stax language reference for use by the CLI.
package docs

import _ "embed"

//go:embed lang.md
var LangGuide string
