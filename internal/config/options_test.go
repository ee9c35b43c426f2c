package config

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/picresize/internal/detect"
	"github.com/maauso/picresize/internal/media"
)

func TestParseSize(t *testing.T) {
	valid := []struct {
		input    string
		expected media.Size
	}{
		{"150x150", media.Size{Width: 150, Height: 150}},
		{"150x200", media.Size{Width: 150, Height: 200}},
		{"1x1", media.Size{Width: 1, Height: 1}},
		{"1920x1080", media.Size{Width: 1920, Height: 1080}},
	}
	for _, tt := range valid {
		t.Run(tt.input, func(t *testing.T) {
			size, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, size)
		})
	}

	invalid := []string{
		"",
		"150",
		"150*150",
		"150X150",
		"150x150x3",
		"axb",
		"150x",
		"x150",
		"1.5x2",
		"0x150",
		"150x-1",
		"70000x10",
		"20000x20000",
		"4611686018427387904x2",
	}
	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := ParseSize(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSize)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "size", ce.Field)
			assert.Equal(t, input, ce.Value)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, detect.Format(""), f)

	f, err = ParseFormat("jpg")
	require.NoError(t, err)
	assert.Equal(t, detect.JPEG, f)

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, detect.PNG, f)

	for _, input := range []string{"gif", "jpeg", "PNG", "webp"} {
		_, err := ParseFormat(input)
		assert.ErrorIs(t, err, ErrInvalidFormat, input)
	}
}

func TestParseColor(t *testing.T) {
	valid := []struct {
		input    string
		expected color.NRGBA
	}{
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"Red", color.NRGBA{R: 255, A: 255}},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#f008", color.NRGBA{R: 255, A: 0x88}},
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}},
		{"#10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}},
		{"10,20,30", color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{"(10, 20, 30, 0)", color.NRGBA{R: 10, G: 20, B: 30}},
		{"rgb(1,2,3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}},
		{"rgba(1, 2, 3, 4)", color.NRGBA{R: 1, G: 2, B: 3, A: 4}},
	}
	for _, tt := range valid {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}

	for _, input := range []string{"", "notacolor", "#12", "#gggggg", "1,2", "1,2,3,4,5", "256,0,0", "-1,0,0"} {
		t.Run("invalid "+input, func(t *testing.T) {
			_, err := ParseColor(input)
			assert.ErrorIs(t, err, ErrInvalidColor)
		})
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	dir := t.TempDir()

	opts, err := ParseArgs(nil, dir, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, dir, opts.Folder)
	assert.Equal(t, media.DefaultSize, opts.Size)
	assert.Equal(t, detect.Format(""), opts.Format)
	assert.Equal(t, color.NRGBA{}, opts.Background)
}

func TestParseArgs_AllFlags(t *testing.T) {
	dir := t.TempDir()

	t.Run("short flags", func(t *testing.T) {
		opts, err := ParseArgs([]string{"-f", dir, "-s", "200x100", "-t", "png", "-c", "black"}, "/nonexistent", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, dir, opts.Folder)
		assert.Equal(t, media.Size{Width: 200, Height: 100}, opts.Size)
		assert.Equal(t, detect.PNG, opts.Format)
		assert.Equal(t, color.NRGBA{A: 255}, opts.Background)
	})

	t.Run("long flags", func(t *testing.T) {
		opts, err := ParseArgs([]string{"--folder=" + dir, "--size=64x64", "--type=jpg", "--color=#ff0000"}, "/nonexistent", io.Discard)
		require.NoError(t, err)
		assert.Equal(t, media.Size{Width: 64, Height: 64}, opts.Size)
		assert.Equal(t, detect.JPEG, opts.Format)
		assert.Equal(t, color.NRGBA{R: 255, A: 255}, opts.Background)
	})
}

func TestParseArgs_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing folder", []string{"-f", filepath.Join(dir, "missing")}, ErrInvalidFolder},
		{"folder is a file", []string{"-f", file}, ErrInvalidFolder},
		{"bad size", []string{"-f", dir, "-s", "150"}, ErrInvalidSize},
		{"bad type", []string{"-f", dir, "-t", "gif"}, ErrInvalidFormat},
		{"bad color", []string{"-f", dir, "-c", "nope"}, ErrInvalidColor},
		{"positional args", []string{"-f", dir, "extra"}, ErrUnexpectedArgs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args, dir, io.Discard)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown flag", func(t *testing.T) {
		_, err := ParseArgs([]string{"--bogus"}, dir, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("help", func(t *testing.T) {
		var out bytes.Buffer
		_, err := ParseArgs([]string{"-h"}, dir, &out)
		assert.True(t, errors.Is(err, pflag.ErrHelp))
		assert.Contains(t, out.String(), "--folder")
	})
}

func TestOptions_Validate_NotWritable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can write to any directory")
	}

	dir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	opts := &Options{Folder: dir, Size: media.DefaultSize}
	err := opts.Validate()
	assert.ErrorIs(t, err, ErrFolderNotWritable)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, dir, ce.Value)
}

func TestOptions_Validate_Size(t *testing.T) {
	opts := &Options{Folder: t.TempDir(), Size: media.Size{Width: 0, Height: 10}}
	assert.ErrorIs(t, opts.Validate(), ErrInvalidSize)
}

func TestConfigError_Message(t *testing.T) {
	_, err := ParseSize("150-200")
	require.Error(t, err)
	assert.Equal(t, `invalid size "150-200": size should be in format 150x200`, err.Error())
}
