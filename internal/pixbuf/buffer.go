package pixbuf

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PixelBuffer is an interleaved, row-major image. The sample for pixel
// (x, y), channel c lives at Data[(y*Width+x)*Channels+c].
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Data     []uint8
}

// New allocates a zeroed buffer. Non-positive dimensions give an empty buffer.
func New(width, height, channels int) *PixelBuffer {
	size := 0
	if width > 0 && height > 0 && channels > 0 {
		size = width * height * channels
	}
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Data:     make([]uint8, size),
	}
}

func (p *PixelBuffer) Index(x, y, c int) int {
	return (y*p.Width+x)*p.Channels + c
}

func (p *PixelBuffer) At(x, y, c int) uint8 {
	return p.Data[p.Index(x, y, c)]
}

func (p *PixelBuffer) Set(x, y, c int, v uint8) {
	p.Data[p.Index(x, y, c)] = v
}

// Valid reports whether the data length matches the declared shape.
func (p *PixelBuffer) Valid() bool {
	if p.Width <= 0 || p.Height <= 0 || p.Channels <= 0 {
		return len(p.Data) == 0
	}
	return len(p.Data) == p.Width*p.Height*p.Channels
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	out := *p
	out.Data = append([]uint8(nil), p.Data...)
	return &out
}

// FromImage flattens img into a buffer. Grey images give one channel, opaque
// colour images three and anything with transparency four (straight alpha).
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf := New(w, h, 1)
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.Data[y*w:], src.Pix[off:off+w])
		}
		return buf
	case *image.Gray16:
		buf := New(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				buf.Set(x, y, 0, uint8(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y>>8))
			}
		}
		return buf
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	channels := 4
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		channels = 3
	}

	buf := New(w, h, channels)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*nrgba.Stride + x*4
			copy(buf.Data[buf.Index(x, y, 0):], nrgba.Pix[i:i+channels])
		}
	}
	return buf
}

// ToImage converts the buffer to a standard library image suitable for
// encoding. Buffers with more than four channels keep the first four.
func (p *PixelBuffer) ToImage() image.Image {
	rect := image.Rect(0, 0, max(p.Width, 0), max(p.Height, 0))
	if p.Channels == 1 {
		gray := image.NewGray(rect)
		copy(gray.Pix, p.Data)
		return gray
	}

	out := image.NewNRGBA(rect)
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			out.SetNRGBA(x, y, p.nrgbaAt(x, y))
		}
	}
	return out
}

func (p *PixelBuffer) nrgbaAt(x, y int) color.NRGBA {
	i := p.Index(x, y, 0)
	switch p.Channels {
	case 2:
		return color.NRGBA{p.Data[i], p.Data[i], p.Data[i], p.Data[i+1]}
	case 3:
		return color.NRGBA{p.Data[i], p.Data[i+1], p.Data[i+2], 0xff}
	default:
		return color.NRGBA{p.Data[i], p.Data[i+1], p.Data[i+2], p.Data[i+3]}
	}
}
