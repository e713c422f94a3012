// Copyright © 2025 The furlint authors

// Package docs embeds the furlint diagnostic reference for use by the CLI.
package docs

import _ "embed"

//go:embed codes.md
var CodesGuide string
