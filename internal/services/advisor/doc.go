// Package advisor asks an OpenAI-compatible model to suggest catalog
// instruments for labels the resolver could not match. It is strictly
// optional: without an API key the rest of the tool works unchanged, and a
// suggestion is only ever applied through the same rename path an operator
// uses. Replies that do not name a catalog instrument are discarded.
package advisor
