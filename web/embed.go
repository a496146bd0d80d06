// Package web exposes the embedded templates and site assets.
// It lives at the module root so go:embed can reach the sibling directories;
// internal/server mounts it.
package web

import (
	"embed"
	"io/fs"
)

// FS holds templates/, static/, images/ and sounds/.
//
//go:embed templates static images sounds
var FS embed.FS

// Templates is the html/template source tree.
func Templates() fs.FS { return Sub("templates") }

// Assets is the tree served at the site root (/static, /images, /sounds).
func Assets() fs.FS { return FS }

// Sub returns one top-level directory of FS.
func Sub(dir string) fs.FS {
	f, err := fs.Sub(FS, dir)
	if err != nil {
		panic("web: sub-fs " + dir + ": " + err.Error())
	}
	return f
}
