// Package datafiles carries files built into the binaries: web page
// templates and a tiny demo data archive.
package datafiles

import (
	"embed"
	"io/fs"
)

//go:embed preview.html
var PreviewHTML string

//go:embed scene.yaml
var DemoScene []byte

//go:embed demo
var demo embed.FS

// Demo returns the demo data archive contents, laid out like the client
// data: databases at the top, graphics/ below.
func Demo() fs.FS {
	sub, err := fs.Sub(demo, "demo")
	if err != nil {
		panic(err)
	}
	return sub
}
