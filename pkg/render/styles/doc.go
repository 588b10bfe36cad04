// Package styles defines the sheet palette and the output color mode.
//
// Colors are configured as hex strings (#RRGGBB or #RRGGBBAA) and parsed into
// non-premultiplied color.NRGBA values so alpha survives every compositing
// step. A ColorMode of RGB drops alpha at the point a pixel is written, never
// earlier.
package styles
