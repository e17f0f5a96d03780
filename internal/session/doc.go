// Package session owns the mutable edit state between segmentation and plan
// export: the ordered split list, the base filename, and the rename/merge
// operations a user applies to correct the automatic grouping.
//
// Invalid edits are rejected with the session left exactly as it was; the
// coverage invariant is re-validated after every mutation. Sessions persist
// in SQLite so edits survive across CLI invocations, with a file lock
// serializing concurrent processes.
package session
