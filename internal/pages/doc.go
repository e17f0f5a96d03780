// Package pages reads per-page extracted text from fixture files. The engine
// itself never touches the source document; an external text-extraction
// collaborator produces one fragment per page and this package loads that
// sequence for the CLI.
package pages
