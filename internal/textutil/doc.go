// Package textutil provides text processing utilities for label normalization
// and similarity.
//
// The primary use cases are:
//   - Normalizing extracted page labels and catalog aliases to a canonical form
//   - Creating character-bigram fingerprints from normalized labels
//   - Computing cosine similarity between fingerprints
//
// Normalization case-folds text, strips punctuation other than hyphens, and
// collapses whitespace. Fingerprints use bigram frequency vectors with a
// precomputed norm so comparing one fragment against a large alias list stays
// cheap.
package textutil
