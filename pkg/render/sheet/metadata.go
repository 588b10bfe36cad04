package sheet

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/contactsheet/pkg/render/frame"
)

// Info is the video description shown above the grid.
type Info struct {
	Filename        string
	SizeBytes       int64
	Width, Height   int
	DurationMicros  int64
	VideoCodec      string
	VideoCodecLong  string
	BitrateKbps     int64
	FrameRate       float64
	AudioCodec      string // Empty if the file has no audio
	AudioSampleRate int    // Hz
	AudioChannels   int
	AudioStreams    int
}

var printer = message.NewPrinter(language.English)

// MetadataLines formats info as the lines of the metadata block.
func MetadataLines(info Info) []string {
	lines := []string{
		"Filename: " + info.Filename,
		printer.Sprintf("Size: %s (%d bytes)", HumanSize(info.SizeBytes), info.SizeBytes),
		fmt.Sprintf("Resolution: %dx%d", info.Width, info.Height),
		"Duration: " + frame.FormatTimestamp(info.DurationMicros/1_000_000),
	}

	video := "Video: " + strings.ToUpper(info.VideoCodec)
	if info.VideoCodecLong != "" {
		video += " (" + info.VideoCodecLong + ")"
	}
	video += printer.Sprintf(" :: %dkbps, %.2f fps", info.BitrateKbps, info.FrameRate)
	lines = append(lines, video)

	if info.AudioCodec == "" {
		lines = append(lines, "Audio: none")
	} else {
		lines = append(lines, printer.Sprintf("Audio: %s :: %dkHz, %d channels, %d stream",
			strings.ToUpper(info.AudioCodec), info.AudioSampleRate/1000, info.AudioChannels, info.AudioStreams))
	}
	return lines
}

// HumanSize formats a byte count in 1024 steps with two decimals.
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	v := float64(n)
	for _, suffix := range []string{"KB", "MB", "GB"} {
		v /= unit
		if v < unit {
			return fmt.Sprintf("%.2f%s", v, suffix)
		}
	}
	return fmt.Sprintf("%.2fTB", v/unit)
}
