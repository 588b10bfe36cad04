// Package video is the frame source of a contact sheet.
//
// A [Source] exposes the container metadata of one opened video and decodes
// single frames at requested time marks. [FFmpeg] implements [Opener] with the
// ffprobe and ffmpeg binaries; tests substitute in-memory sources.
//
// Sampling follows a fixed policy: [Marks] skips a short lead-in, which is
// often black, and spreads the marks evenly up to the mirrored point before
// the end. [Sample] decodes one frame per mark and keeps mark order, which the
// sheet relies on to place cells row by row.
package video
