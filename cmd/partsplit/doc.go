// Command partsplit segments scanned sheet-music books into per-instrument
// parts. It reads per-page label text, resolves each page against an
// instrument catalog, groups contiguous pages into splits, and keeps the
// result as an editable session until the assembly plan is exported.
package main
