// Package yamlcache provides a memoizing YAML file loader.
//
// Parsed documents are cached per path string for the lifetime of the Loader,
// so a build reads each file from disk at most once no matter how many
// consumers ask for it. The cache is bounded with least-recently-used
// eviction; in this domain the bound is never reached in practice.
package yamlcache

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// DefaultCapacity bounds the number of distinct parsed paths kept in memory.
const DefaultCapacity = 10240

// ReadFileFunc reads a file's full content. Injectable for tests.
type ReadFileFunc func(path string) ([]byte, error)

// Loader parses YAML files and memoizes the result per path.
type Loader struct {
	cache    *lru
	readFile ReadFileFunc
	reads    atomic.Int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithCapacity overrides the cache capacity.
func WithCapacity(n int) Option {
	return func(l *Loader) {
		l.cache = newLRU(n)
	}
}

// WithReadFile overrides the file reader, typically for tests.
func WithReadFile(fn ReadFileFunc) Option {
	return func(l *Loader) {
		l.readFile = fn
	}
}

// NewLoader creates a Loader with the default capacity.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		cache:    newLRU(DefaultCapacity),
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the parsed content of the YAML file at path.
//
// The first call for a given path string reads and parses the file; later
// calls return the cached value without touching the filesystem. Read and
// parse failures are returned to the caller and are not cached.
func (l *Loader) Load(path string) (any, error) {
	if v, ok := l.cache.get(path); ok {
		return v, nil
	}

	data, err := l.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read yaml file: %w", err)
	}
	l.reads.Add(1)

	var parsed any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse yaml file %s: %w", path, err)
	}

	l.cache.put(path, parsed)
	return parsed, nil
}

// LoadMap is Load for documents whose top level must be a mapping.
func (l *Loader) LoadMap(path string) (map[string]any, error) {
	v, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("yaml file %s: expected a mapping at top level, got %T", path, v)
	}
	return m, nil
}

// Reads reports how many successful file reads the loader has performed.
func (l *Loader) Reads() int64 {
	return l.reads.Load()
}

// Size reports the number of cached entries.
func (l *Loader) Size() int {
	return l.cache.size()
}
