package site

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/moddocs/internal/config"
	builderrors "git.home.luguber.info/inful/moddocs/internal/errors"
	"git.home.luguber.info/inful/moddocs/internal/frontmatter"
)

// Report summarizes one build invocation.
type Report struct {
	BuildID  string
	Pages    int
	Assets   int
	Duration time.Duration
}

// Builder runs the build pipeline: discovery, plugin hooks, Markdown to
// HTML conversion, output writing. It is single-use per build; plugins
// carry per-build memoized state.
type Builder struct {
	cfg      *config.Config
	plugins  []Plugin
	markdown goldmark.Markdown
}

// NewBuilder creates a builder for one build invocation.
func NewBuilder(cfg *config.Config, plugins ...Plugin) *Builder {
	return &Builder{
		cfg:     cfg,
		plugins: plugins,
		// GFM tables are needed for the mode and tag index tables.
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Build produces the site under the configured site dir. Any failure stops
// the build; there is no partial-page recovery.
func (b *Builder) Build() (*Report, error) {
	start := time.Now()
	report := &Report{BuildID: uuid.NewString()}

	slog.Info("Starting site build",
		"build_id", report.BuildID,
		"docs_dir", b.cfg.Site.DocsDir,
		"site_dir", b.cfg.Site.SiteDir)

	files, err := Discover(b.cfg.Site.DocsDir, b.cfg.Site.SiteDir, b.cfg.Site.DirectoryURLs())
	if err != nil {
		return nil, builderrors.WrapError(err, builderrors.CategoryFileSystem, "discover source files")
	}

	for _, plugin := range b.plugins {
		rewriter, ok := plugin.(FilesRewriter)
		if !ok {
			continue
		}
		files, err = rewriter.RewriteFiles(files)
		if err != nil {
			return nil, builderrors.WrapError(err, builderrors.CategoryInternal, "rewrite file set").
				WithContext("plugin", plugin.Name())
		}
	}

	for _, f := range files {
		if f.Page {
			if err := b.buildPage(f); err != nil {
				return nil, err
			}
			report.Pages++
		} else {
			if err := copyFile(f.AbsSrcPath, f.AbsDestPath); err != nil {
				return nil, builderrors.WrapError(err, builderrors.CategoryFileSystem, "copy asset").
					WithContext("src", f.SrcPath)
			}
			report.Assets++
		}
	}

	report.Duration = time.Since(start)
	slog.Info("Site build finished",
		"build_id", report.BuildID,
		"pages", report.Pages,
		"assets", report.Assets,
		"duration", report.Duration)
	return report, nil
}

// RenderPageMarkdown runs the source and Markdown hooks for one page and
// returns its final Markdown, without writing output. Shared by the build
// and the link checker.
func (b *Builder) RenderPageMarkdown(f File) (string, error) {
	_, markdown, err := b.renderPageParts(f)
	return markdown, err
}

// renderPageParts obtains a page's source, strips its frontmatter and runs
// the Markdown hooks over the body.
func (b *Builder) renderPageParts(f File) (map[string]any, string, error) {
	content, err := b.readSource(f)
	if err != nil {
		return nil, "", err
	}

	meta, body, err := frontmatter.Split(content)
	if err != nil {
		return nil, "", builderrors.WrapError(err, builderrors.CategoryMarkdown, "split frontmatter").
			WithContext("page", f.SrcPath)
	}

	markdown := string(body)
	for _, plugin := range b.plugins {
		transformer, ok := plugin.(MarkdownTransformer)
		if !ok {
			continue
		}
		markdown, err = transformer.TransformMarkdown(markdown, f)
		if err != nil {
			return nil, "", builderrors.WrapError(err, builderrors.CategoryTemplate, "transform markdown").
				WithContext("page", f.SrcPath).
				WithContext("plugin", plugin.Name())
		}
	}
	return meta, markdown, nil
}

// Files discovers and rewrites the descriptor set the way Build does,
// without building anything.
func (b *Builder) Files() ([]File, error) {
	files, err := Discover(b.cfg.Site.DocsDir, b.cfg.Site.SiteDir, b.cfg.Site.DirectoryURLs())
	if err != nil {
		return nil, err
	}
	for _, plugin := range b.plugins {
		if rewriter, ok := plugin.(FilesRewriter); ok {
			if files, err = rewriter.RewriteFiles(files); err != nil {
				return nil, err
			}
		}
	}
	return files, nil
}

func (b *Builder) buildPage(f File) error {
	slog.Debug("Building page", "src", f.SrcPath, "dest", f.DestPath)

	meta, markdown, err := b.renderPageParts(f)
	if err != nil {
		return err
	}

	var body bytes.Buffer
	if err := b.markdown.Convert([]byte(markdown), &body); err != nil {
		return builderrors.WrapError(err, builderrors.CategoryMarkdown, "convert markdown").
			WithContext("page", f.SrcPath)
	}

	title := frontmatter.Title(meta)
	if title == "" {
		title = b.cfg.Site.Title
	}

	html, err := renderShell(title, body.String())
	if err != nil {
		return builderrors.WrapError(err, builderrors.CategoryTemplate, "render page shell").
			WithContext("page", f.SrcPath)
	}

	if err := writeFile(f.AbsDestPath, []byte(html)); err != nil {
		return builderrors.WrapError(err, builderrors.CategoryFileSystem, "write page").
			WithContext("dest", f.DestPath)
	}
	return nil
}

func (b *Builder) readSource(f File) ([]byte, error) {
	for _, plugin := range b.plugins {
		reader, ok := plugin.(SourceReader)
		if !ok {
			continue
		}
		content, handled, err := reader.ReadSource(f)
		if err != nil {
			return nil, builderrors.WrapError(err, builderrors.CategoryYAML, "read page source").
				WithContext("page", f.SrcPath).
				WithContext("plugin", plugin.Name())
		}
		if handled {
			return content, nil
		}
	}

	content, err := os.ReadFile(f.AbsSrcPath)
	if err != nil {
		return nil, builderrors.WrapError(err, builderrors.CategoryFileSystem, "read page source").
			WithContext("page", f.SrcPath)
	}
	return content, nil
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main>
{{.Body}}</main>
</body>
</html>
`))

func renderShell(title, body string) (string, error) {
	var buf bytes.Buffer
	err := shellTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(body)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read asset: %w", err)
	}
	return writeFile(dest, data)
}
