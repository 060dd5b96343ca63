package modules

import (
	"fmt"
)

// TagIndex maps configuration tag names to the records modules append to
// them. Key order is insertion order (first module to extend a tag decides
// where it appears), matching the per-key append order guarantee.
type TagIndex struct {
	names   []string
	entries map[string][]Entry
}

func newTagIndex() *TagIndex {
	return &TagIndex{entries: make(map[string][]Entry)}
}

func (t *TagIndex) append(name string, entry Entry) {
	if _, ok := t.entries[name]; !ok {
		t.names = append(t.names, name)
	}
	t.entries[name] = append(t.entries[name], entry)
}

// Names returns the tag names in first-seen order.
func (t *TagIndex) Names() []string {
	return t.names
}

// Get returns the extension records appended to the named tag.
func (t *TagIndex) Get(name string) []Entry {
	return t.entries[name]
}

// Len returns the number of distinct extended tags.
func (t *TagIndex) Len() int {
	return len(t.names)
}

// TagExtensions scans every module's configuration entries for ones that
// extend an existing tag, and groups the added values by tag name.
//
// A configuration entry may name several tags at once (name as a list); the
// same records land under each. An entry with extends set but no
// added_values extends with nothing and creates no key.
func (a *Aggregator) TagExtensions() (*TagIndex, error) {
	records, err := a.Modules()
	if err != nil {
		return nil, err
	}

	index := newTagIndex()
	for _, record := range records {
		section, ok := record["configuration"]
		if !ok {
			continue
		}
		tags, ok := section.([]any)
		if !ok {
			return nil, fmt.Errorf("module configuration section is %T, expected a list", section)
		}

		for _, rawTag := range tags {
			tag, ok := rawTag.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("module configuration entry is %T, expected a mapping", rawTag)
			}
			if !truthy(tag["extends"]) {
				continue
			}

			tagNames, err := tagNameList(tag["name"])
			if err != nil {
				return nil, err
			}

			addedValues, err := addedValueList(tag["added_values"])
			if err != nil {
				return nil, err
			}
			if len(addedValues) == 0 {
				continue
			}

			moduleName, err := record.Name()
			if err != nil {
				return nil, err
			}

			for _, tagName := range tagNames {
				for _, added := range addedValues {
					index.append(tagName, withModule(added, moduleName))
				}
			}
		}
	}
	return index, nil
}

// tagNameList normalizes a tag's name field to a list of names.
// Some modules describe two tags at the same time.
func tagNameList(v any) ([]string, error) {
	switch name := v.(type) {
	case string:
		return []string{name}, nil
	case []any:
		names := make([]string, 0, len(name))
		for _, item := range name {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("configuration tag name list contains %T, expected a string", item)
			}
			names = append(names, s)
		}
		return names, nil
	case nil:
		return nil, fmt.Errorf("extending configuration tag has no name field")
	default:
		return nil, fmt.Errorf("configuration tag name is %T, expected a string or list", v)
	}
}

// addedValueList coerces added_values into mappings; a missing field means
// the tag is extended with nothing.
func addedValueList(v any) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("configuration tag added_values is %T, expected a list", v)
	}
	return entryList("added_values", raw)
}

// truthy mirrors loose boolean interpretation of YAML values: nil, false,
// zero numbers, empty strings and empty collections are false.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case int:
		return value != 0
	case float64:
		return value != 0
	case []any:
		return len(value) > 0
	case map[string]any:
		return len(value) > 0
	default:
		return true
	}
}
