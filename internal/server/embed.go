package server

import "embed"

//go:embed templates/*.tpl
var pageTemplates embed.FS

// PageTemplate wraps HTML renderer output in the demo form.
const PageTemplate = "templates/page"
