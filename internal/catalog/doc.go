// Package catalog owns the instrument lookup table the label resolver
// matches page text against.
//
// The builtin table ships as embedded TOML covering brass band and common
// concert band parts. Users extend or override it through the
// catalog.extra_path config setting; entries are merged by canonical name.
// Aliases are normalized once at load and exposed in a stable order so
// resolver tie-breaking stays deterministic.
package catalog
