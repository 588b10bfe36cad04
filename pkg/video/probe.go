package video

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// probeOutput mirrors the parts of `ffprobe -print_format json -show_format
// -show_streams` that describe a sheet.
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType     string `json:"codec_type"`
	CodecName     string `json:"codec_name"`
	CodecLongName string `json:"codec_long_name"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	AvgFrameRate  string `json:"avg_frame_rate"`
	RFrameRate    string `json:"r_frame_rate"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	Disposition   struct {
		AttachedPic int `json:"attached_pic"`
	} `json:"disposition"`
}

type probeFormat struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
	Size     string `json:"size"`
	BitRate  string `json:"bit_rate"`
}

// ParseProbe builds Metadata from ffprobe JSON output.
//
// Output that is not valid UTF-8 means the container carries corrupt metadata
// tags and is reported as CORRUPT_METADATA, which stripping the tags fixes.
func ParseProbe(path string, data []byte) (Metadata, error) {
	if !utf8.Valid(data) {
		return Metadata{}, errs.New(errs.ErrCodeCorruptMetadata, "%s has undecodable metadata", filepath.Base(path))
	}

	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return Metadata{}, errs.Wrap(errs.ErrCodeOpenFailed, err, "parse probe output for %s", filepath.Base(path))
	}

	meta := Metadata{
		Filename:       filepath.Base(path),
		SizeBytes:      parseInt(out.Format.Size),
		DurationMicros: int64(parseFloat(out.Format.Duration) * 1e6),
		BitrateKbps:    parseInt(out.Format.BitRate) / 1024,
	}

	var video *probeStream
	for i := range out.Streams {
		s := &out.Streams[i]
		switch s.CodecType {
		case "video":
			if video == nil && s.Disposition.AttachedPic == 0 {
				video = s
			}
		case "audio":
			if meta.AudioStreams == 0 {
				meta.AudioCodec = s.CodecName
				meta.AudioSampleRate = int(parseInt(s.SampleRate))
				meta.AudioChannels = s.Channels
			}
			meta.AudioStreams++
		}
	}
	if video == nil {
		return Metadata{}, errs.New(errs.ErrCodeOpenFailed, "%s has no video stream", meta.Filename)
	}

	meta.Width = video.Width
	meta.Height = video.Height
	meta.VideoCodec = video.CodecName
	meta.VideoCodecLong = video.CodecLongName
	meta.FrameRate = parseRate(video.AvgFrameRate)
	if meta.FrameRate == 0 {
		meta.FrameRate = parseRate(video.RFrameRate)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return Metadata{}, errs.New(errs.ErrCodeOpenFailed, "%s reports invalid dimensions %dx%d",
			meta.Filename, meta.Width, meta.Height)
	}
	return meta, nil
}

// parseRate parses ffprobe rationals such as "30000/1001".
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return parseFloat(num) / d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
