// Package web provides the embedded landing page template and stylesheet.
package web

import "embed"

// FS contains the HTML templates and static assets (templates/, static/css).
//
//go:embed templates static
var FS embed.FS
