// Package segment groups resolved page labels into contiguous per-instrument
// splits and owns the coverage invariant every split list must satisfy.
//
// Segmentation is a deliberate run-length encoding: any matching ambiguity
// shows up as extra splits the user can merge, rather than being absorbed
// silently. ValidateCoverage re-checks the no-gaps, no-overlaps property and
// is called after every session mutation.
package segment
