package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/maauso/picresize/internal/detect"
)

// DefaultJPEGQuality is used when Options.JPEGQuality is not set.
const DefaultJPEGQuality = 95

// ErrUnsupportedFormat is returned when an image cannot be encoded in the requested format.
var ErrUnsupportedFormat = errors.New("unsupported output format")

var encoders = map[detect.Format]imaging.Format{
	detect.JPEG: imaging.JPEG,
	detect.PNG:  imaging.PNG,
	detect.GIF:  imaging.GIF,
	detect.BMP:  imaging.BMP,
	detect.TIFF: imaging.TIFF,
}

// Decode reads an image and reports the format it was decoded from.
func Decode(r io.Reader) (image.Image, detect.Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, detect.Format(name), nil
}

// Encode writes img to w in the given format.
// JPEG has no alpha channel, so transparent pixels come out black.
func Encode(w io.Writer, img image.Image, format detect.Format, jpegQuality int) error {
	enc, ok := encoders[format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if jpegQuality <= 0 {
		jpegQuality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img, enc, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}
