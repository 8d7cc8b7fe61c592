package link

import (
	"encoding/json"
	"math"
)

// BoundingBox locates a person inside an image, in pixels of the image's stored size
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// UnmarshalJSON requires all four fields; a partial box is rejected
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var raw struct {
		X      *int `json:"x"`
		Y      *int `json:"y"`
		Width  *int `json:"width"`
		Height *int `json:"height"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidBoundingBox
	}
	if raw.X == nil || raw.Y == nil || raw.Width == nil || raw.Height == nil {
		return ErrInvalidBoundingBox
	}
	*b = BoundingBox{X: *raw.X, Y: *raw.Y, Width: *raw.Width, Height: *raw.Height}
	return nil
}

// HasValidCoordinates checks x, y >= 0, a non-empty area, and that every
// field fits the int32 columns it is stored in
func (b BoundingBox) HasValidCoordinates() bool {
	if b.X < 0 || b.Y < 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return b.X <= math.MaxInt32 && b.Y <= math.MaxInt32 &&
		b.Width <= math.MaxInt32 && b.Height <= math.MaxInt32
}

// FitsWithin reports whether the box lies inside a width x height image
func (b BoundingBox) FitsWithin(width, height int) bool {
	return b.Width <= width && b.X <= width-b.Width &&
		b.Height <= height && b.Y <= height-b.Height
}

// ValidateBox checks coordinates always and image bounds only when dimsKnown.
// A nil box is valid.
func ValidateBox(box *BoundingBox, width, height int, dimsKnown bool) error {
	if box == nil {
		return nil
	}
	if !box.HasValidCoordinates() {
		return ErrInvalidBoundingBox
	}
	if dimsKnown && !box.FitsWithin(width, height) {
		return ErrBoundingBoxOutOfBounds
	}
	return nil
}
