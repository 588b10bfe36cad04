// Package geometry derives every pixel dimension of a contact sheet from the
// source frame size, the grid shape and a shrink factor.
//
// Resolve is a pure function: calling it twice with the same inputs yields the
// same Layout. The sheet pipeline relies on this to resolve the layout twice,
// once from a square probe size and once from the enlarged size of the first
// sampled frame.
//
// All divisions truncate toward zero. Results may differ by one pixel from a
// rounding implementation; tests pin exact integers.
//
// # Example
//
//	l, err := geometry.Resolve(1920, 1080, 3, 3, 4)
//	if err != nil {
//	    return err
//	}
//	l = l.WithMetadataHeight(textHeight)
//	canvas := image.Rect(0, 0, l.CanvasWidth, l.CanvasHeight)
package geometry
