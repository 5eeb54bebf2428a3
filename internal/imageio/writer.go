package imageio

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rm-hull/conv-pool/internal/pixbuf"
	"golang.org/x/image/tiff"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

const jpegQuality = 95

// ParseFormat accepts a format name or file extension, with or without the
// leading dot.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("unsupported image format %q", name)
}

// Ext is the file extension used when writing this format.
func (f Format) Ext() string {
	if f == JPEG {
		return ".jpg"
	}
	return "." + string(f)
}

func (f Format) ContentType() string {
	return "image/" + string(f)
}

func (f Format) encoder() imgio.Encoder {
	switch f {
	case JPEG:
		return imgio.JPEGEncoder(jpegQuality)
	case BMP:
		return imgio.BMPEncoder()
	case TIFF:
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return imgio.PNGEncoder()
	}
}

// Write encodes buf to path, choosing the format from the file extension.
func Write(path string, buf *pixbuf.PixelBuffer) error {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if !buf.Valid() {
		return &WriteError{Path: path, Err: fmt.Errorf("malformed %dx%dx%d buffer of %d bytes", buf.Width, buf.Height, buf.Channels, len(buf.Data))}
	}
	if err := imgio.Save(path, buf.ToImage(), format.encoder()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Encode writes buf to w in the given format.
func Encode(w io.Writer, buf *pixbuf.PixelBuffer, format Format) error {
	if err := format.encoder()(w, buf.ToImage()); err != nil {
		return &WriteError{Path: "-", Err: err}
	}
	return nil
}
