package assets

import "embed"

// AssetsFS holds the stylesheet, scripts and images served under /assets/.
// css/output.css and js/htmx.min.js are produced by `do gen`.
//
//go:embed css js img
var AssetsFS embed.FS
