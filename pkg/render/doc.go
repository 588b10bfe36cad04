// Package render groups the raster stages that turn sampled frames into a
// contact sheet image.
//
// # Subpackages
//
//   - [styles]: color palette parsing and the RGB/RGBA output modes
//   - [text]: measuring and drawing outlined multi-line labels
//   - [shadow]: the blurred drop-shadow plate placed behind each frame
//   - [frame]: one cell, a bordered frame over its shadow with a timestamp
//   - [sheet]: the full canvas, a metadata header above the frame grid
//   - [sink]: JPEG or PNG encoding and atomic writes to disk
//
// Everything here works on in-memory images; nothing decodes video. The
// geometry every stage draws against comes from package geometry.
//
// # Example
//
//	palette, err := styles.DefaultHexPalette().Parse()
//	if err != nil {
//	    return err
//	}
//	sh, err := sheet.Assemble(sheet.MetadataLines(info), cells, sheet.Config{
//	    Layout:  layout,
//	    Palette: palette,
//	    Mode:    styles.ModeRGB,
//	    Fonts:   fonts.LoadSet("arial.ttf", "Georgia.ttf", layout.FontSize),
//	    Anchor:  frame.BottomRight,
//	})
//	if err != nil {
//	    return err
//	}
//	err = sink.Save("holiday.jpg", sh.Image, styles.ModeRGB)
package render
