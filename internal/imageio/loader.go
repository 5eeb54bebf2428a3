package imageio

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rm-hull/conv-pool/internal/pixbuf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load opens and decodes the image at path. Any failure is returned as a
// *LoadError carrying the decoder's reason.
func Load(path string) (*pixbuf.PixelBuffer, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: err.Error(), Err: err}
	}
	return pixbuf.FromImage(img), nil
}

// Decode reads an encoded image from r.
func Decode(r io.Reader) (*pixbuf.PixelBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &LoadError{Reason: err.Error(), Err: err}
	}
	return pixbuf.FromImage(img), nil
}
