package media

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidDimensions is returned when the provided dimensions are not positive.
var ErrInvalidDimensions = errors.New("invalid dimensions: width and height must be positive")

// ErrSizeTooLarge is returned when a canvas exceeds MaxSide or MaxPixels.
var ErrSizeTooLarge = errors.New("canvas size too large")

const (
	// MaxSide is the largest accepted canvas width or height.
	MaxSide = 65535
	// MaxPixels bounds the canvas area (1 GiB of NRGBA pixels).
	MaxPixels = 1 << 28
)

// Size is a target canvas size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is the canvas size used when none is requested.
var DefaultSize = Size{Width: 150, Height: 150}

// Validate checks that both sides are positive and that the canvas fits
// within MaxSide and MaxPixels.
func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, s.Width, s.Height)
	}
	if s.Width > MaxSide || s.Height > MaxSide {
		return fmt.Errorf("%w: %s exceeds %d pixels per side", ErrSizeTooLarge, s, MaxSide)
	}
	// Both sides are at most MaxSide, so the product cannot overflow.
	if s.Width*s.Height > MaxPixels {
		return fmt.Errorf("%w: %s exceeds %d pixels", ErrSizeTooLarge, s, MaxPixels)
	}
	return nil
}

// Box returns the side of the square every image is fitted into.
func (s Size) Box() int {
	return min(s.Width, s.Height)
}

// String formats the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Placement selects how a scaled image is positioned on the canvas.
type Placement string

const (
	// PlacementSquare offsets both axes by ceil(axis/2) - ceil(box/2), where box
	// is min(width, height). The image sits at the top-left of a centred square,
	// so on non-square canvases and for images smaller than the box it is not
	// visually centred.
	PlacementSquare Placement = "square"
	// PlacementCanvas centres the scaled image on the canvas itself.
	PlacementCanvas Placement = "canvas"
)

// IsValid returns true if the placement is known.
func (p Placement) IsValid() bool {
	return p == PlacementSquare || p == PlacementCanvas
}

// FitSize returns the dimensions of a srcW x srcH image scaled uniformly so
// that neither side exceeds box. Images that already fit are left untouched.
func FitSize(srcW, srcH, box int) (int, int) {
	if srcW <= 0 || srcH <= 0 || box <= 0 {
		return 0, 0
	}
	if srcW <= box && srcH <= box {
		return srcW, srcH
	}

	if srcW >= srcH {
		h := int(math.Round(float64(srcH) * float64(box) / float64(srcW)))
		return box, max(h, 1)
	}
	w := int(math.Round(float64(srcW) * float64(box) / float64(srcH)))
	return max(w, 1), box
}

// Offset returns where the top-left corner of a scaled image of the given
// size lands on a canvas of size s.
func (s Size) Offset(p Placement, scaled image.Point) image.Point {
	if p == PlacementCanvas {
		return image.Pt((s.Width-scaled.X)/2, (s.Height-scaled.Y)/2)
	}
	box := ceilHalf(s.Box())
	return image.Pt(ceilHalf(s.Width)-box, ceilHalf(s.Height)-box)
}

func ceilHalf(n int) int {
	return (n + 1) / 2
}
