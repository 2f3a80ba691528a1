// Package fixtures ships the demo catalog loaded by `catalog load-fixtures`.
package fixtures

import "embed"

//go:embed *.json
var FS embed.FS
