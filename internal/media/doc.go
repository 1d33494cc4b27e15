// Package media models the embedded technical metadata of a media file.
//
// The shape follows MediaInfo's track layout (general, video, audio, text and
// menu tracks) because that is what the token derivations reason about.
// Values that MediaInfo reports both raw and formatted (file size, duration,
// bit rates, sampling rate) carry both forms so derivations never reformat.
//
// Info is loaded from JSON produced by a collaborator, or assembled from an
// ffprobe run by the ffprobe subpackage.
package media
