package bootstrap

// Rect is an axis-aligned box in document coordinates.
// Top grows downward, so Bottom >= Top for a well-formed box.
type Rect struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Height returns the vertical extent of r.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Viewport reports the visible area of the document.
type Viewport interface {
	Rect() Rect
}

// Element reports the bounds of a rendered element.
type Element interface {
	Rect() Rect
}

// IsElementCloseToViewport reports whether el lies within threshold of the
// visible area vp, above or below it. Both bounds are inclusive, so with a
// threshold of zero el must overlap or touch vp.
func IsElementCloseToViewport(el, vp Rect, threshold float64) bool {
	return el.Top <= vp.Bottom+threshold && el.Bottom >= vp.Top-threshold
}
