package stage

import (
	"github.com/rm-hull/conv-pool/internal/pixbuf"
)

type MaxPoolStage struct{}

func (s *MaxPoolStage) Name() string {
	return "Max pooling"
}

// Process halves each dimension, keeping the brightest sample of every 2x2 block
func (s *MaxPoolStage) Process(in *pixbuf.PixelBuffer) *pixbuf.PixelBuffer {
	return MaxPool(in)
}

// MaxPool downsamples by two using the per-channel maximum of each
// non-overlapping 2x2 block. A trailing odd row or column is dropped.
func MaxPool(in *pixbuf.PixelBuffer) *pixbuf.PixelBuffer {
	return pool(in, func(a, b, c, d uint8) uint8 {
		return max(a, b, c, d)
	})
}

// pool walks the 2x2 blocks of in and stores reduce(block) per channel.
func pool(in *pixbuf.PixelBuffer, reduce func(a, b, c, d uint8) uint8) *pixbuf.PixelBuffer {
	outWidth, outHeight := in.Width/2, in.Height/2
	if outWidth <= 0 || outHeight <= 0 {
		return pixbuf.New(max(outWidth, 0), max(outHeight, 0), in.Channels)
	}

	out := pixbuf.New(outWidth, outHeight, in.Channels)
	for y := 0; y < outHeight; y++ {
		for x := 0; x < outWidth; x++ {
			topLeft := in.Index(2*x, 2*y, 0)
			topRight := in.Index(2*x+1, 2*y, 0)
			bottomLeft := in.Index(2*x, 2*y+1, 0)
			bottomRight := in.Index(2*x+1, 2*y+1, 0)
			dst := out.Index(x, y, 0)

			for c := 0; c < in.Channels; c++ {
				out.Data[dst+c] = reduce(
					in.Data[topLeft+c], in.Data[topRight+c],
					in.Data[bottomLeft+c], in.Data[bottomRight+c],
				)
			}
		}
	}
	return out
}
