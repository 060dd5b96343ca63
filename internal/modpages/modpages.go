// Package modpages is the build plugin that turns IRC server module
// descriptors (*/modules/*.yml) into documentation pages and injects the
// cross-module index views into every page's Markdown.
package modpages

import (
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/moddocs/internal/config"
	"git.home.luguber.info/inful/moddocs/internal/modules"
	"git.home.luguber.info/inful/moddocs/internal/render"
	"git.home.luguber.info/inful/moddocs/internal/site"
	"git.home.luguber.info/inful/moddocs/internal/yamlcache"
)

// Plugin implements the site build hooks. One instance serves one build;
// the aggregator memoizes the module list for that build's lifetime.
type Plugin struct {
	cfg        *config.Config
	loader     *yamlcache.Loader
	aggregator *modules.Aggregator
	engine     *render.Engine
}

// New creates the plugin for one build invocation.
func New(cfg *config.Config) (*Plugin, error) {
	return NewWithLoader(cfg, yamlcache.NewLoader())
}

// NewWithLoader creates the plugin with an injected loader, for tests that
// observe read behavior.
func NewWithLoader(cfg *config.Config, loader *yamlcache.Loader) (*Plugin, error) {
	engine, err := render.NewEngine()
	if err != nil {
		return nil, err
	}
	return &Plugin{
		cfg:        cfg,
		loader:     loader,
		aggregator: modules.NewAggregator(loader, filepath.Join(cfg.Site.DocsDir, filepath.FromSlash(cfg.Modules.Dir))),
		engine:     engine,
	}, nil
}

// Name implements site.Plugin.
func (p *Plugin) Name() string { return "modpages" }

// IsModulePath reports whether a source path is a module descriptor: any
// leading directory, then a literal modules directory, then a .yml file.
func IsModulePath(srcPath string) bool {
	if !strings.EqualFold(path.Ext(srcPath), ".yml") {
		return false
	}
	segments := strings.Split(path.Clean(srcPath), "/")
	return len(segments) >= 3 && segments[len(segments)-2] == "modules"
}

// RewriteFiles reclassifies module descriptors as documentation pages,
// recomputing their destination paths and URLs under the extended rule.
func (p *Plugin) RewriteFiles(files []site.File) ([]site.File, error) {
	out := make([]site.File, 0, len(files))
	for _, f := range files {
		out = append(out, f.Reclassified(IsModulePath(f.SrcPath), p.cfg.Site.SiteDir, p.cfg.Site.DirectoryURLs()))
	}
	return out, nil
}

// ReadSource renders a module page's YAML through the module template in
// place of the raw file content. Other files fall through.
func (p *Plugin) ReadSource(f site.File) ([]byte, bool, error) {
	if !f.ModulePage {
		return nil, false, nil
	}

	record, err := p.loader.LoadMap(f.AbsSrcPath)
	if err != nil {
		return nil, false, err
	}
	markdown, err := p.engine.RenderModule(record)
	if err != nil {
		return nil, false, err
	}
	return []byte(markdown), true, nil
}

// TransformMarkdown re-renders a page's Markdown as a template with the
// index views bound as deferred values, so the aggregation cost is paid
// only by pages that reference them. The core tag data is bound statically;
// the loader's cache makes the per-page load a lookup after the first page.
func (p *Plugin) TransformMarkdown(markdown string, f site.File) (string, error) {
	coreTags, err := p.coreConfigTags()
	if err != nil {
		return "", err
	}

	ctx := render.Context{
		"module_chmodes":        render.Defer(func() (any, error) { return p.aggregator.Chmodes() }),
		"module_umodes":         render.Defer(func() (any, error) { return p.aggregator.Umodes() }),
		"module_extbans":        render.Defer(func() (any, error) { return p.aggregator.Extbans() }),
		"module_snomasks":       render.Defer(func() (any, error) { return p.aggregator.Snomasks() }),
		"module_tag_extensions": render.Defer(func() (any, error) { return p.aggregator.TagExtensions() }),
		"core_config_tags":      coreTags,
	}
	return p.engine.RenderPage(markdown, ctx)
}

// coreConfigTags loads the core configuration tag data file.
func (p *Plugin) coreConfigTags() (any, error) {
	dataFile := filepath.Join(p.cfg.Site.DocsDir, filepath.FromSlash(p.cfg.Modules.CoreTagsFile))
	return p.loader.Load(dataFile)
}
