// Package site implements the host build pipeline: it discovers source
// files, classifies them, runs plugin hooks, renders Markdown to HTML and
// writes the output tree.
package site

import (
	"path"
	"path/filepath"
	"strings"
)

// File describes one discovered source file: where it came from, where it
// will be written, and how it is classified. Descriptors are immutable;
// reclassification constructs a new value with every field copied
// explicitly.
type File struct {
	SrcPath     string // slash-separated, relative to the docs dir
	AbsSrcPath  string
	DestPath    string // slash-separated, relative to the site dir
	AbsDestPath string
	URL         string
	Page        bool // renders through the Markdown pipeline
	ModulePage  bool // module YAML descriptor (set by the modpages plugin)
}

// NewFile builds a descriptor for srcPath under the host's generic
// classification rule: Markdown files are documentation pages, everything
// else is copied verbatim.
func NewFile(srcPath, docsDir, siteDir string, useDirectoryURLs bool) File {
	f := File{
		SrcPath:    path.Clean(srcPath),
		AbsSrcPath: filepath.Join(docsDir, filepath.FromSlash(srcPath)),
		Page:       strings.EqualFold(path.Ext(srcPath), ".md"),
	}
	f.derivePaths(siteDir, useDirectoryURLs)
	return f
}

// Reclassified returns a copy of f with the module-page flag applied and
// destination path and URL recomputed, since classification decides whether
// a file renders to HTML or is copied through.
func (f File) Reclassified(modulePage bool, siteDir string, useDirectoryURLs bool) File {
	out := File{
		SrcPath:    f.SrcPath,
		AbsSrcPath: f.AbsSrcPath,
		Page:       f.Page || modulePage,
		ModulePage: modulePage,
	}
	out.derivePaths(siteDir, useDirectoryURLs)
	return out
}

// derivePaths computes DestPath, AbsDestPath and URL from the source path
// and classification.
func (f *File) derivePaths(siteDir string, useDirectoryURLs bool) {
	if !f.Page {
		f.DestPath = f.SrcPath
		f.AbsDestPath = filepath.Join(siteDir, filepath.FromSlash(f.DestPath))
		f.URL = f.SrcPath
		return
	}

	dir := path.Dir(f.SrcPath)
	base := strings.TrimSuffix(path.Base(f.SrcPath), path.Ext(f.SrcPath))

	switch {
	case base == "index" || base == "README":
		f.DestPath = join(dir, "index.html")
	case useDirectoryURLs:
		f.DestPath = join(dir, base, "index.html")
	default:
		f.DestPath = join(dir, base+".html")
	}

	f.AbsDestPath = filepath.Join(siteDir, filepath.FromSlash(f.DestPath))

	f.URL = f.DestPath
	if useDirectoryURLs {
		f.URL = strings.TrimSuffix(f.URL, "index.html")
		if f.URL == "" {
			f.URL = "."
		}
	}
}

// join is path.Join that treats "." directories as the root.
func join(dir string, parts ...string) string {
	if dir == "." {
		return path.Join(parts...)
	}
	return path.Join(append([]string{dir}, parts...)...)
}
