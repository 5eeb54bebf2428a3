package stage

import (
	"github.com/rm-hull/conv-pool/internal/pixbuf"
)

type AvgPoolStage struct{}

func (s *AvgPoolStage) Name() string {
	return "Average pooling"
}

// Process halves each dimension, averaging every 2x2 block
func (s *AvgPoolStage) Process(in *pixbuf.PixelBuffer) *pixbuf.PixelBuffer {
	return AvgPool(in)
}

// AvgPool downsamples by two using the truncated per-channel mean of each
// non-overlapping 2x2 block. A trailing odd row or column is dropped.
func AvgPool(in *pixbuf.PixelBuffer) *pixbuf.PixelBuffer {
	return pool(in, func(a, b, c, d uint8) uint8 {
		sum := uint32(a) + uint32(b) + uint32(c) + uint32(d)
		return uint8(sum / 4)
	})
}
