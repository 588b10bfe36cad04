// Package pkg holds the libraries behind the contactsheet command.
//
// A contact sheet is a single image summarizing a video: a block of
// metadata lines (file name, size, resolution, duration, codecs) above a
// grid of frames sampled at evenly spaced times, each with a drop shadow
// and a timestamp.
//
// # Data Flow
//
//	video file
//	     ↓
//	[video] probe metadata (ffprobe), pick marks, decode frames (ffmpeg)
//	     ↓
//	[geometry] resolve cell size, padding, borders, fonts, canvas size
//	     ↓
//	[render] shadow plates, framed cells, metadata header, full sheet
//	     ↓
//	[render/sink] JPEG (RGB) or PNG (RGBA) written next to the video
//
// [pipeline] runs these stages for one video or a folder of videos and is
// the entry point for most callers. Probe results are kept in [cache] so
// re-running over a folder does not re-probe unchanged files.
//
// # Supporting Packages
//
//   - [errors]: error codes shared by every stage
//   - [fonts]: font lookup by name with an embedded fallback
//   - [observability]: hooks around each pipeline stage and cache lookup
//   - [buildinfo]: version stamped in at build time
//
// # Example
//
//	runner := pipeline.NewRunner(video.NewFFmpeg(), cache.NewNullCache(), nil, log.Default())
//	res, err := runner.Generate(ctx, "holiday.mp4", pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	fmt.Println("wrote", res.Output)
package pkg
