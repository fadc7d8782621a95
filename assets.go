package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page and modal templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet bundled with the page so applications can
// serve it alongside their own markup.
//
// Typical mount:
//
//	mux.Handle("/regform/",
//	  http.StripPrefix("/regform/",
//	    http.FileServerFS(regform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
