// Package plan builds the assembly plan an external document-assembly
// collaborator consumes: one entry per split carrying the instrument name,
// its page range, and the derived output filename. The plan is the engine's
// only export format; partsplit never copies document bytes itself.
package plan
