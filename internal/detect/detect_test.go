package detect

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func sampleImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 100, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestDetectReader(t *testing.T) {
	img := sampleImage()

	encode := func(t *testing.T, enc func(*bytes.Buffer) error) []byte {
		t.Helper()
		var buf bytes.Buffer
		require.NoError(t, enc(&buf))
		return buf.Bytes()
	}

	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"jpeg", encode(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) }), JPEG},
		{"png", encode(t, func(b *bytes.Buffer) error { return png.Encode(b, img) }), PNG},
		{"gif", encode(t, func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }), GIF},
		{"bmp", encode(t, func(b *bytes.Buffer) error { return bmp.Encode(b, img) }), BMP},
		{"tiff", encode(t, func(b *bytes.Buffer) error { return tiff.Encode(b, img, nil) }), TIFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ok := DetectReader(bytes.NewReader(tt.data))
			require.True(t, ok)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetect_IgnoresExtension(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sampleImage()))

	t.Run("png content with txt extension", func(t *testing.T) {
		path := writeFile(t, dir, "notes.txt", buf.Bytes())
		format, ok := Detect(path)
		assert.True(t, ok)
		assert.Equal(t, PNG, format)
	})

	t.Run("text content with png extension", func(t *testing.T) {
		path := writeFile(t, dir, "fake.png", []byte("just some text, not pixels\n"))
		_, ok := Detect(path)
		assert.False(t, ok)
	})
}

func TestDetectReader_UndecodableImageFormats(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"ppm", append([]byte("P6\n2 2\n255\n"), bytes.Repeat([]byte{0xff, 0x00, 0x00}, 4)...)},
		{"pgm", append([]byte("P5\n2 2\n255\n"), 0x00, 0x40, 0x80, 0xff)},
		{"pbm", []byte("P1\n2 2\n0 1\n1 0\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := DetectReader(bytes.NewReader(tt.data))
			assert.False(t, ok)
		})
	}
}

func TestDetect_ErrorsMeanNotAnImage(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		assert.False(t, IsImage(filepath.Join(dir, "missing.jpg")))
	})

	t.Run("directory", func(t *testing.T) {
		assert.False(t, IsImage(dir))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, dir, "empty.jpg", nil)
		assert.False(t, IsImage(path))
	})
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".jpg", JPEG.Extension())
	assert.Equal(t, ".png", PNG.Extension())
	assert.Equal(t, ".tiff", TIFF.Extension())
	assert.Equal(t, "", Format("").Extension())
}
