package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/maauso/picresize/internal/detect"
	"github.com/maauso/picresize/internal/media"
)

// ParseSize parses a "WxH" string such as "150x200".
func ParseSize(s string) (media.Size, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return media.Size{}, &ConfigError{Field: "size", Value: s, Err: ErrInvalidSize}
	}

	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil {
		return media.Size{}, &ConfigError{
			Field: "size",
			Value: s,
			Err:   fmt.Errorf("%w: width and height should be integers", ErrInvalidSize),
		}
	}

	size := media.Size{Width: w, Height: h}
	if err := size.Validate(); err != nil {
		return media.Size{}, &ConfigError{
			Field: "size",
			Value: s,
			Err:   fmt.Errorf("%w: %w", ErrInvalidSize, err),
		}
	}
	return size, nil
}

// outputFormats maps --type choices to encoders.
var outputFormats = map[string]detect.Format{
	"jpg": detect.JPEG,
	"png": detect.PNG,
}

// ParseFormat parses a --type value. An empty value means "keep the source format".
func ParseFormat(s string) (detect.Format, error) {
	if s == "" {
		return "", nil
	}
	f, ok := outputFormats[s]
	if !ok {
		return "", &ConfigError{Field: "type", Value: s, Err: ErrInvalidFormat}
	}
	return f, nil
}

// ParseColor parses a background color. Accepted forms are SVG color names
// ("white"), hex ("#fff", "#ffff", "#ffffff", "#ffffffff") and decimal
// tuples ("255,255,255", "(255, 255, 255, 128)", "rgba(0,0,0,0)").
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	invalid := &ConfigError{Field: "color", Value: s, Err: ErrInvalidColor}

	switch {
	case v == "":
		return color.NRGBA{}, invalid
	case strings.HasPrefix(v, "#"):
		c, ok := parseHexColor(v[1:])
		if !ok {
			return color.NRGBA{}, invalid
		}
		return c, nil
	case strings.ContainsRune(v, ','):
		c, ok := parseTupleColor(v)
		if !ok {
			return color.NRGBA{}, invalid
		}
		return c, nil
	}

	named, ok := colornames.Map[v]
	if !ok {
		return color.NRGBA{}, invalid
	}
	return color.NRGBAModel.Convert(named).(color.NRGBA), nil
}

func parseHexColor(hex string) (color.NRGBA, bool) {
	switch len(hex) {
	case 3, 4:
		// Expand shorthand: "f0a" -> "ff00aa".
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

func parseTupleColor(v string) (color.NRGBA, bool) {
	v = strings.TrimPrefix(v, "rgba")
	v = strings.TrimPrefix(v, "rgb")
	v = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(v), "("), ")")

	parts := strings.Split(v, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}

	channels := [4]uint8{0, 0, 0, 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		channels[i] = uint8(v)
	}
	return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, true
}
