// Package services defines shared utilities consumed by the engine packages
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp session IDs, operation names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep rejected edits,
//     validation failures, and advisor errors distinguishable via errors.Is.
//   - The exit-code mapping the CLI uses to separate bad input from defects.
//
// Use these helpers when wiring new commands or engine logic so operational
// behaviour (error handling, observability) stays uniform across the tool.
package services
