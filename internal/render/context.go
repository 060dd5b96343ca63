// Package render provides the template engine used for module pages and
// for re-rendering page Markdown with the cross-module index views.
//
// Context values may be deferred: a Deferred wraps a computation that runs
// only when a template actually references the bound name, so pages that
// never mention an index view never pay for computing it.
package render

import (
	"fmt"
)

// Deferred is a tagged lazy value. It is resolved by the engine at the
// moment a template references its name, once per reference; the engine
// adds no memoization of its own.
type Deferred struct {
	compute func() (any, error)
}

// Defer wraps a computation as a Deferred context value.
func Defer(compute func() (any, error)) Deferred {
	return Deferred{compute: compute}
}

// DeferValue wraps an infallible computation as a Deferred context value.
func DeferValue(compute func() any) Deferred {
	return Deferred{compute: func() (any, error) { return compute(), nil }}
}

// Context binds template names to values. Plain values are substituted
// as-is; Deferred values are computed on reference.
type Context map[string]any

// Resolve returns the value bound to name, computing it if deferred.
func (c Context) Resolve(name string) (any, error) {
	value, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("context has no binding for %q", name)
	}
	if deferred, ok := value.(Deferred); ok {
		result, err := deferred.compute()
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", name, err)
		}
		return result, nil
	}
	return value, nil
}
