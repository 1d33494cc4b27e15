// Package ffprobe provides a typed wrapper around ffprobe JSON output and
// converts it into the media.Info track model.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - ToInfo: maps a Result onto media.Info so token derivations can run
//     without MediaInfo installed
package ffprobe
