package imageio

import "fmt"

// FileNotFoundError is returned by Load when the path does
// not exist.
type FileNotFoundError struct {
	Path string
}

func (f *FileNotFoundError) Error() string {
	return "file not found: " + f.Path
}

// DecodeError is returned by Load when a file exists but is
// not a supported raster image.
type DecodeError struct {
	Path string
	Err  error
}

func (d *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", d.Path, d.Err)
}

func (d *DecodeError) Unwrap() error {
	return d.Err
}

// UnsupportedFormatError is returned by Save when no encoder
// matches the output extension.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (u *UnsupportedFormatError) Error() string {
	if u.Ext == "" {
		return "no output format for " + u.Path + ": missing extension"
	}
	return fmt.Sprintf("no output format for %s: unsupported extension %q", u.Path, u.Ext)
}
