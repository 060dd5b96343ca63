package linkcheck

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/moddocs/internal/site"
)

// Finding is one unresolved internal link.
type Finding struct {
	Page        string // source path of the page containing the link
	Destination string
}

// Checker verifies internal links against a built page set.
type Checker struct {
	targets map[string]struct{}
}

// NewChecker indexes the link targets a site exposes: every page URL, every
// destination path and every copied asset path.
func NewChecker(files []site.File) *Checker {
	targets := make(map[string]struct{}, len(files)*3)
	for _, f := range files {
		targets[normalize(f.URL)] = struct{}{}
		targets[normalize(f.DestPath)] = struct{}{}
		// Authors link to source paths (other.md, ../modules/foo.yml); the
		// generator rewrites them, so they count as valid targets too.
		targets[normalize(f.SrcPath)] = struct{}{}
	}
	return &Checker{targets: targets}
}

// CheckPage extracts links from one page's final Markdown and returns a
// finding per internal destination that resolves to nothing.
func (c *Checker) CheckPage(f site.File, markdown string) []Finding {
	var findings []Finding
	for _, link := range ExtractLinks([]byte(markdown)) {
		if IsExternal(link.Destination) {
			continue
		}
		dest := link.Destination
		if dest == "" || strings.HasPrefix(dest, "#") {
			continue
		}
		if !c.resolves(f, dest) {
			findings = append(findings, Finding{Page: f.SrcPath, Destination: link.Destination})
		}
	}
	return findings
}

func (c *Checker) resolves(from site.File, dest string) bool {
	// Drop fragments and query strings before resolution.
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return true
	}

	if strings.HasPrefix(dest, "/") {
		_, ok := c.targets[normalize(strings.TrimPrefix(dest, "/"))]
		return ok
	}

	// Try resolution against the page URL and against the source path;
	// authored links predate the generator's path rewriting and may use
	// either convention.
	urlBase := path.Dir(from.URL)
	if strings.HasSuffix(from.URL, "/") {
		urlBase = strings.TrimSuffix(from.URL, "/")
	}
	for _, base := range []string{urlBase, path.Dir(from.SrcPath)} {
		if _, ok := c.targets[normalize(path.Join(base, dest))]; ok {
			return true
		}
	}
	return false
}

func normalize(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	p = strings.TrimSuffix(p, "/")
	if p == "." {
		return ""
	}
	return p
}
