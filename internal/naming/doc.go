// Package naming derives sanitized output filenames for exported splits.
//
// DeriveFilename is the pure mapping from (base, instrument) to the name the
// assembly collaborator writes; CollisionResolver disambiguates duplicates
// within one plan. BaseFromPath seeds a session's base name from the source
// document's filename.
package naming
