package frame

import (
	"image"
	"strings"

	errs "github.com/matzehuels/contactsheet/pkg/errors"
)

// Anchor is where the timestamp sits inside a cell.
type Anchor string

// Supported anchors.
const (
	TopLeft     Anchor = "top-left"
	TopRight    Anchor = "top-right"
	BottomLeft  Anchor = "bottom-left"
	BottomRight Anchor = "bottom-right"
	Center      Anchor = "center"
)

// DefaultAnchor is the default timestamp position.
const DefaultAnchor = TopRight

// Anchors lists every valid anchor.
var Anchors = []Anchor{TopLeft, TopRight, BottomLeft, BottomRight, Center}

// ParseAnchor accepts an anchor name, with '-' or '_' as separator.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Validate reports an INVALID_ANCHOR error for anchors outside Anchors.
func (a Anchor) Validate() error {
	for _, v := range Anchors {
		if a == v {
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidAnchor,
		"invalid timestamp anchor %q (must be top-left, top-right, bottom-left, bottom-right or center)", string(a))
}

// Position returns the top-left point of a text box of size text inside a
// frame of size frame, keeping padding/2 from the anchored edges.
func (a Anchor) Position(frame, text image.Point, padding int) (image.Point, error) {
	m := padding / 2
	switch a {
	case TopLeft:
		return image.Pt(m, m), nil
	case TopRight:
		return image.Pt(frame.X-text.X-m, m), nil
	case BottomLeft:
		return image.Pt(m, frame.Y-text.Y-m), nil
	case BottomRight:
		return image.Pt(frame.X-text.X-m, frame.Y-text.Y-m), nil
	case Center:
		return image.Pt((frame.X-text.X)/2, (frame.Y-text.Y)/2), nil
	}
	return image.Point{}, a.Validate()
}
