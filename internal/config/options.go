package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/maauso/picresize/internal/detect"
	"github.com/maauso/picresize/internal/media"
)

// ErrUnexpectedArgs is returned when positional arguments are passed.
var ErrUnexpectedArgs = errors.New("unexpected positional arguments")

// Options holds the validated command-line choices for one run.
type Options struct {
	// Folder is the input directory. Outputs go to Folder/resized.
	Folder string `validate:"required,dir"`
	// Size is the output canvas size.
	Size media.Size
	// Format overrides the output format; empty keeps each file's format.
	Format detect.Format `validate:"omitempty,oneof=jpeg png"`
	// Background fills the canvas; transparent unless a color was given.
	Background color.NRGBA
}

// ParseArgs parses command-line arguments (without the program name).
// defaultFolder is used when --folder is not given. Usage and parse errors
// are printed to out. pflag.ErrHelp is returned as is for -h/--help.
func ParseArgs(args []string, defaultFolder string, out io.Writer) (*Options, error) {
	fs := pflag.NewFlagSet("picresize", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.SortFlags = false

	folder := fs.StringP("folder", "f", defaultFolder, "input directory; outputs are written to <folder>/resized")
	size := fs.StringP("size", "s", media.DefaultSize.String(), "output canvas size as WxH")
	format := fs.StringP("type", "t", "", "output format: jpg or png (default: keep each file's format)")
	bg := fs.StringP("color", "c", "", "background color: name, #hex or r,g,b[,a] (default: transparent)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(out, "Usage: picresize [flags]\n\nResize pictures to the specified size.\n\nFlags:\n%s", fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedArgs, fs.Args())
	}

	opts := &Options{Folder: *folder}

	var err error
	if opts.Size, err = ParseSize(*size); err != nil {
		return nil, err
	}
	if opts.Format, err = ParseFormat(*format); err != nil {
		return nil, err
	}
	if *bg != "" {
		if opts.Background, err = ParseColor(*bg); err != nil {
			return nil, err
		}
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate checks the folder exists and is writable, the size is positive and
// the format is supported. It only reads file-system metadata.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "Folder":
					return &ConfigError{Field: "folder", Value: o.Folder, Err: ErrInvalidFolder}
				case "Format":
					return &ConfigError{Field: "type", Value: string(o.Format), Err: ErrInvalidFormat}
				}
			}
		}
		return fmt.Errorf("config: %w", err)
	}

	if !writable(o.Folder) {
		return &ConfigError{Field: "folder", Value: o.Folder, Err: ErrFolderNotWritable}
	}

	if err := o.Size.Validate(); err != nil {
		return &ConfigError{Field: "size", Value: o.Size.String(), Err: fmt.Errorf("%w: %w", ErrInvalidSize, err)}
	}
	return nil
}
