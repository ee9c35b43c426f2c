package media

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Composite scales src to fit the square of side size.Box(), never enlarging
// it, and alpha-blends it onto a size.Width x size.Height canvas filled with bg.
func Composite(src image.Image, size Size, bg color.Color, r Resampler, p Placement) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), size.Box())
	if w == 0 || h == 0 {
		return canvas
	}

	scaled := src
	if w != b.Dx() || h != b.Dy() {
		scaled = r.Resample(src, w, h)
	}

	sb := scaled.Bounds()
	off := size.Offset(p, image.Pt(w, h))
	draw.Draw(canvas, image.Rectangle{Min: off, Max: off.Add(sb.Size())}, scaled, sb.Min, draw.Over)

	return canvas
}
