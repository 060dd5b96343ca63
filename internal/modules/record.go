// Package modules loads per-module YAML descriptors and derives the
// cross-module index views (channel modes, user modes, extended bans,
// server notice masks, configuration tag extensions).
package modules

import (
	"fmt"
)

// Record is one parsed module descriptor. The YAML schema is deliberately
// not validated up front; consumers fail on the first missing key they
// actually need, which aborts the whole build.
type Record map[string]any

// Name returns the module's name field.
func (r Record) Name() (string, error) {
	v, ok := r["name"]
	if !ok {
		return "", fmt.Errorf("module record has no name field")
	}
	name, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("module name is %T, expected a string", v)
	}
	return name, nil
}

// Entry is one mode, extban or snomask descriptor, augmented with the
// owning module's name under the "module" key.
type Entry map[string]any

// chars returns the list under r[key].chars, or nil when r has no such
// section. A section present without a chars list is an error.
func (r Record) chars(key string) ([]any, error) {
	section, ok := r[key]
	if !ok {
		return nil, nil
	}
	m, ok := section.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("module %s section is %T, expected a mapping", key, section)
	}
	chars, ok := m["chars"]
	if !ok {
		return nil, fmt.Errorf("module %s section has no chars list", key)
	}
	list, ok := chars.([]any)
	if !ok {
		return nil, fmt.Errorf("module %s.chars is %T, expected a list", key, chars)
	}
	return list, nil
}

// entryList coerces one element of a chars/snomasks list into a mapping.
func entryList(key string, raw []any) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("module %s entry is %T, expected a mapping", key, item)
		}
		out = append(out, m)
	}
	return out, nil
}
