package media

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Resampler names accepted by NewResampler.
const (
	ResamplerImaging = "imaging"
	ResamplerNFNT    = "nfnt"
)

// Resampler scales an image to exactly width x height.
type Resampler interface {
	Resample(src image.Image, width, height int) image.Image
}

// ImagingResampler resamples with github.com/disintegration/imaging.
type ImagingResampler struct {
	Filter imaging.ResampleFilter
}

// NewImagingResampler returns an ImagingResampler using the Lanczos filter.
func NewImagingResampler() *ImagingResampler {
	return &ImagingResampler{Filter: imaging.Lanczos}
}

// Resample implements Resampler.
func (r *ImagingResampler) Resample(src image.Image, width, height int) image.Image {
	return imaging.Resize(src, width, height, r.Filter)
}

// NFNTResampler resamples with github.com/nfnt/resize.
type NFNTResampler struct {
	Interp resize.InterpolationFunction
}

// NewNFNTResampler returns an NFNTResampler using Lanczos3 interpolation.
func NewNFNTResampler() *NFNTResampler {
	return &NFNTResampler{Interp: resize.Lanczos3}
}

// Resample implements Resampler.
func (r *NFNTResampler) Resample(src image.Image, width, height int) image.Image {
	return resize.Resize(uint(width), uint(height), src, r.Interp) // #nosec G115 - dimensions are validated positive
}

// NewResampler builds a Resampler by name. An empty name selects imaging.
func NewResampler(name string) (Resampler, error) {
	switch name {
	case "", ResamplerImaging:
		return NewImagingResampler(), nil
	case ResamplerNFNT:
		return NewNFNTResampler(), nil
	default:
		return nil, fmt.Errorf("unknown resampler %q", name)
	}
}
