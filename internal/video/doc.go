// Package video exposes frame access for the scene-boundary detector.
//
// Source is the abstraction the detector consumes. FFmpegSource implements it
// by indexing packet timestamps with ffprobe and extracting single frames with
// ffmpeg, then box-filtering them down to a few pixels with imaging.
package video
