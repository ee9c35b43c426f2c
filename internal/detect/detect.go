// Package detect classifies files as images by their content signature.
// File names and extensions are never consulted.
package detect

import (
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a decodable image encoding.
type Format string

const (
	// JPEG is the JPEG/JFIF format.
	JPEG Format = "jpeg"
	// PNG is the Portable Network Graphics format.
	PNG Format = "png"
	// GIF is the Graphics Interchange Format.
	GIF Format = "gif"
	// BMP is the Windows bitmap format.
	BMP Format = "bmp"
	// TIFF is the Tagged Image File Format.
	TIFF Format = "tiff"
	// WebP is Google's WebP format (decode only).
	WebP Format = "webp"
)

// mimeFormats maps sniffed MIME types to the formats we can decode.
// Netpbm (PPM/PGM/PBM) has no decoder in the image stack and is not listed.
var mimeFormats = map[string]Format{
	"image/jpeg": JPEG,
	"image/png":  PNG,
	"image/gif":  GIF,
	"image/bmp":  BMP,
	"image/tiff": TIFF,
	"image/webp": WebP,
}

// Extension returns the canonical file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case "":
		return ""
	default:
		return "." + string(f)
	}
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Detect sniffs the header of the file at path.
// Any I/O failure is reported as "no format".
func Detect(path string) (Format, bool) {
	f, err := os.Open(path) // #nosec G304 - path comes from a directory listing chosen by the user
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	return DetectReader(f)
}

// DetectReader sniffs the leading bytes of r.
func DetectReader(r io.Reader) (Format, bool) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return "", false
	}
	for m := mime; m != nil; m = m.Parent() {
		if format, ok := mimeFormats[m.String()]; ok {
			return format, true
		}
	}
	return "", false
}

// IsImage reports whether path holds a recognised image.
func IsImage(path string) bool {
	_, ok := Detect(path)
	return ok
}
