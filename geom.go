package fx

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// RectWH creates a rectangle from an origin and a size.
func RectWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the rectangle's width.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the rectangle's height.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// Empty reports whether the rectangle encloses no area. Inverted
// rectangles count as empty.
func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}
