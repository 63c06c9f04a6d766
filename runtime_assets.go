package sitegen

import (
	"io/fs"

	"github.com/goliatone/go-sitegen/pkg/wiring"
)

// RuntimeAssetsFS exposes the browser runtime (menu toggle and contact form
// submission) and its stylesheet so Go applications can serve them.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(sitegen.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return wiring.AssetsFS()
}
