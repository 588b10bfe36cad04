package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/contactsheet/pkg/fonts"
	"github.com/matzehuels/contactsheet/pkg/geometry"
	"github.com/matzehuels/contactsheet/pkg/pipeline"
	"github.com/matzehuels/contactsheet/pkg/render/sheet"
	"github.com/matzehuels/contactsheet/pkg/render/text"
)

type layoutFlags struct {
	width, height      int
	rows, cols, shrink int
	bitrate            int64
	textFont           string
	json               bool
}

func (c *CLI) layoutCommand() *cobra.Command {
	def := pipeline.DefaultOptions()
	f := layoutFlags{width: 1920, height: 1080}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the sheet geometry for a frame size without reading a video",
		Long: `Show the geometry a sheet would get for a video of the given resolution
and bitrate: cell size, borders, font size and canvas size.

The metadata block is measured with placeholder text, so the canvas height is
an estimate within a few pixels of the real sheet.`,
		Example: `  contactsheet layout --width 3840 --height 2160 --bitrate 25000
  contactsheet layout -r 4 -c 5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, enlarge, err := previewLayout(f)
			if err != nil {
				return err
			}
			if f.json {
				return writeLayoutJSON(cmd.OutOrStdout(), l)
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(fmt.Sprintf("Sheet for %dx%d", f.width, f.height)))
			writeLayout(cmd.OutOrStdout(), l, enlarge)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.IntVar(&f.width, "width", f.width, "source frame width")
	fs.IntVar(&f.height, "height", f.height, "source frame height")
	fs.Int64Var(&f.bitrate, "bitrate", 0, "source bitrate in kbps, enlarges high-bitrate frames")
	fs.IntVarP(&f.rows, "rows", "r", def.Rows, "grid rows")
	fs.IntVarP(&f.cols, "cols", "c", def.Cols, "grid columns")
	fs.IntVar(&f.shrink, "shrink", def.Shrink, "shrink factor")
	fs.StringVarP(&f.textFont, "text-font", "f", def.TextFont, "font used to measure the metadata block")
	fs.BoolVar(&f.json, "json", false, "print the layout as JSON")

	return cmd
}

// previewLayout resolves the final layout the way a run would for a video
// of the flagged size and bitrate.
func previewLayout(f layoutFlags) (geometry.Layout, int, error) {
	enlarge := geometry.EnlargeFactor(f.bitrate)
	l, err := geometry.Resolve(f.width*enlarge, f.height*enlarge, f.rows, f.cols, f.shrink)
	if err != nil {
		return geometry.Layout{}, 0, err
	}

	face := fonts.Load(f.textFont, l.FontSize)
	defer face.Close()
	meta := sheet.MetadataLines(sheet.Info{
		Filename:       "example.mp4",
		SizeBytes:      1 << 30,
		Width:          f.width,
		Height:         f.height,
		DurationMicros: 3_600_000_000,
		VideoCodec:     "h264",
		VideoCodecLong: "H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10",
		BitrateKbps:    f.bitrate,
		FrameRate:      29.97,
	})
	_, h := text.Measure(meta, face, text.Style{StrokeWidth: l.StrokeWidth(), LineSpacing: l.LineSpacing})
	return l.WithMetadataHeight(h), enlarge, nil
}

func writeLayout(w io.Writer, l geometry.Layout, enlarge int) {
	printKeyValue(w, "Grid", fmt.Sprintf("%dx%d", l.Rows, l.Cols))
	printKeyValue(w, "Enlarge", fmt.Sprintf("x%d", enlarge))
	printKeyValue(w, "Cell", fmt.Sprintf("%dx%d", l.CellWidth, l.CellHeight))
	printKeyValue(w, "Padding", fmt.Sprint(l.Padding))
	printKeyValue(w, "Border", fmt.Sprint(l.Border))
	printKeyValue(w, "Shadow border", fmt.Sprint(l.ShadowBorder))
	printKeyValue(w, "Font size", fmt.Sprint(l.FontSize))
	printKeyValue(w, "Line spacing", fmt.Sprint(l.LineSpacing))
	printKeyValue(w, "Metadata", fmt.Sprintf("%dpx", l.MetadataHeight))
	printKeyValue(w, "Canvas", fmt.Sprintf("%dx%d", l.CanvasWidth, l.CanvasHeight))
}

func writeLayoutJSON(w io.Writer, l geometry.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
