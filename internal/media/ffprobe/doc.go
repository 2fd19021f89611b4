// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result expose the properties the pipeline reports:
// duration, resolution, frame rate, and audio stream counts.
package ffprobe
