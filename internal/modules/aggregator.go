package modules

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"git.home.luguber.info/inful/moddocs/internal/yamlcache"
)

// Aggregator loads every module descriptor under a directory and exposes
// the derived index views. The module list is computed once per Aggregator
// and shared by all views; the loader's cache ensures each file is read
// from disk at most once per build.
type Aggregator struct {
	loader  *yamlcache.Loader
	dir     string
	modules []Record // nil until the first view forces a load
}

// NewAggregator creates an aggregator over dir/*.yml.
func NewAggregator(loader *yamlcache.Loader, dir string) *Aggregator {
	return &Aggregator{loader: loader, dir: dir}
}

// Modules returns every module record, loading them on first call.
// Files are visited in lexical directory order.
func (a *Aggregator) Modules() ([]Record, error) {
	if a.modules != nil {
		return a.modules, nil
	}

	paths, err := filepath.Glob(filepath.Join(a.dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("glob module files: %w", err)
	}
	sort.Strings(paths)

	slog.Debug("Loading module descriptors", "dir", a.dir, "count", len(paths))

	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		m, err := a.loader.LoadMap(path)
		if err != nil {
			return nil, fmt.Errorf("load module %s: %w", path, err)
		}
		records = append(records, Record(m))
	}

	a.modules = records
	return a.modules, nil
}

// Chmodes returns every channel mode across all modules, in module order,
// each entry carrying the owning module's name.
func (a *Aggregator) Chmodes() ([]Entry, error) {
	return a.charEntries("chmodes")
}

// Umodes returns every user mode across all modules.
func (a *Aggregator) Umodes() ([]Entry, error) {
	return a.charEntries("umodes")
}

// Extbans returns every extended ban across all modules.
func (a *Aggregator) Extbans() ([]Entry, error) {
	return a.charEntries("extbans")
}

// charEntries flattens <key>.chars across all modules. Modules without the
// key contribute nothing; a key present without a chars list is an error.
func (a *Aggregator) charEntries(key string) ([]Entry, error) {
	records, err := a.Modules()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, record := range records {
		raw, err := record.chars(key)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		name, err := record.Name()
		if err != nil {
			return nil, err
		}
		items, err := entryList(key, raw)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			entries = append(entries, withModule(item, name))
		}
	}
	return entries, nil
}

// Snomasks returns every server notice mask across all modules. Unlike the
// mode sections, snomasks is a bare list rather than a chars wrapper.
func (a *Aggregator) Snomasks() ([]Entry, error) {
	records, err := a.Modules()
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, record := range records {
		section, ok := record["snomasks"]
		if !ok {
			continue
		}
		raw, ok := section.([]any)
		if !ok {
			return nil, fmt.Errorf("module snomasks section is %T, expected a list", section)
		}
		name, err := record.Name()
		if err != nil {
			return nil, err
		}
		items, err := entryList("snomasks", raw)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			entries = append(entries, withModule(item, name))
		}
	}
	return entries, nil
}

// withModule shallow-copies entry and sets its module key.
func withModule(entry map[string]any, module string) Entry {
	out := make(Entry, len(entry)+1)
	for k, v := range entry {
		out[k] = v
	}
	out["module"] = module
	return out
}
