// Package web provides the embedded HTML templates and static assets
// for the collatz web interface.
//
// Both directories are embedded at build time. During development the
// static files can be served from the filesystem instead, allowing
// style tweaks without a rebuild.
package web

import (
	"embed"
	"io/fs"
	"os"
)

// templates holds the embedded HTML templates.
//
//go:embed templates/*
var templates embed.FS

// static holds the embedded stylesheet and other static files.
//
//go:embed static/*
var static embed.FS

// Templates returns the filesystem containing the HTML templates.
func Templates() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// This should never happen with properly embedded assets
		panic("failed to access embedded templates: " + err.Error())
	}
	return sub
}

// Static returns a filesystem containing the static assets. In
// development mode (when devPath exists on the filesystem), it returns
// the live filesystem for hot reloading. In production, it returns the
// embedded assets.
//
// If devPath is empty, "./web/static" is checked (relative to the
// working directory).
func Static(devPath string) fs.FS {
	if devPath == "" {
		devPath = "./web/static"
	}

	// Development: check filesystem first for hot reloading
	if stat, err := os.Stat(devPath); err == nil && stat.IsDir() {
		return os.DirFS(devPath)
	}

	// Production: use embedded assets
	// The static FS has "static/" prefix, so we need to use Sub
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// This should never happen with properly embedded assets
		panic("failed to access embedded static assets: " + err.Error())
	}
	return sub
}
