// Package subtitle implements the cue timing and text layout engine: it
// turns transcript segments into SubRip (SRT) cues that satisfy duration and
// line-length constraints, writes the SRT document, and parses documents back
// for validation and statistics.
//
// All operations are pure data transformations plus whole-file reads and
// writes; the package holds no state and is safe for independent concurrent
// invocations.
package subtitle
