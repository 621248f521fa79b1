// Package data embeds the demo game shipped with the binary.
package data

import (
	"embed"
	"io/fs"
)

// demoFS holds the demo game and its asset manifest.
//
//go:embed demo
var demoFS embed.FS

// Game returns the filesystem of the demo game, rooted at its manifest.
func Game() fs.FS {
	return sub("demo/game")
}

// Assets returns the filesystem of the demo asset manifest.
func Assets() fs.FS {
	return sub("demo/assets")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(demoFS, dir)
	if err != nil {
		panic(err)
	}
	return f
}
