package video

import (
	"context"
	"image"
)

// Metadata describes an opened video container.
type Metadata struct {
	Filename        string  `json:"filename"`
	SizeBytes       int64   `json:"size_bytes"`
	DurationMicros  int64   `json:"duration_micros"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	BitrateKbps     int64   `json:"bitrate_kbps"`
	FrameRate       float64 `json:"frame_rate"`
	VideoCodec      string  `json:"video_codec"`
	VideoCodecLong  string  `json:"video_codec_long,omitempty"`
	AudioCodec      string  `json:"audio_codec,omitempty"`
	AudioSampleRate int     `json:"audio_sample_rate,omitempty"`
	AudioChannels   int     `json:"audio_channels,omitempty"`
	AudioStreams    int     `json:"audio_streams"`
}

// HasAudio reports whether the container has at least one audio stream.
func (m Metadata) HasAudio() bool {
	return m.AudioStreams > 0 && m.AudioCodec != ""
}

// Source is one opened video.
//
// Implementations used with more than one sampling worker must allow
// concurrent Frame calls.
type Source interface {
	// Metadata returns the container and stream description.
	Metadata() Metadata
	// Frame decodes the first frame at or after micros.
	Frame(ctx context.Context, micros int64) (image.Image, error)
	// Close releases the decoder and any file handles.
	Close() error
}

// Opener opens videos by path.
type Opener interface {
	Open(ctx context.Context, path string) (Source, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, path string) (Source, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, path string) (Source, error) {
	return f(ctx, path)
}
