// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: stream properties including frame rate and pixel aspect ratio
//
// Entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - FrameTimestamps: lists video packet timestamps for frame indexing
package ffprobe
