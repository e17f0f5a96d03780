// Package labeling resolves raw per-page text fragments into instrument
// labels by fuzzy-matching them against the catalog.
//
// Resolution never fails: fragments that clear the similarity threshold
// become canonical catalog names, fragments that miss keep their normalized
// text as an operator-correctable placeholder, and pages without any
// extractable text inherit the previous page's label (continuation rule).
package labeling
