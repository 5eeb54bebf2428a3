package stage

import (
	"github.com/rm-hull/conv-pool/internal/pixbuf"
)

// ConvolutionStage applies a 3x3 kernel to the colour channels.
type ConvolutionStage struct {
	Kernel   Kernel
	Boundary Boundary
}

func (s *ConvolutionStage) Name() string {
	return "Convolution"
}

// Process convolves the image with the stage's kernel, leaving any channel
// beyond the first three (e.g. alpha) untouched
func (s *ConvolutionStage) Process(in *pixbuf.PixelBuffer) *pixbuf.PixelBuffer {
	return ConvolveWithBoundary(in, s.Kernel, s.Boundary)
}

// Convolve applies k to every pixel, skipping neighbours that fall outside
// the image.
func Convolve(in *pixbuf.PixelBuffer, k Kernel) *pixbuf.PixelBuffer {
	return ConvolveWithBoundary(in, k, BoundaryOmit)
}

// ConvolveWithBoundary computes, for channels 0-2, the weighted sum over the
// 3x3 neighbourhood of each pixel, truncates it to an integer and clamps it
// to [0, 255]. Remaining channels are copied from the input.
func ConvolveWithBoundary(in *pixbuf.PixelBuffer, k Kernel, boundary Boundary) *pixbuf.PixelBuffer {
	if in.Width <= 0 || in.Height <= 0 {
		return pixbuf.New(0, 0, in.Channels)
	}

	out := pixbuf.New(in.Width, in.Height, in.Channels)
	colour := min(3, in.Channels)

	for y := 0; y < in.Height; y++ {
		for x := 0; x < in.Width; x++ {
			var sum [3]float32

			for ky := -1; ky <= 1; ky++ {
				iy, ok := boundary.resolve(y+ky, in.Height)
				if !ok {
					continue
				}
				for kx := -1; kx <= 1; kx++ {
					ix, ok := boundary.resolve(x+kx, in.Width)
					if !ok {
						continue
					}
					weight := k[ky+1][kx+1]
					base := in.Index(ix, iy, 0)
					for c := 0; c < colour; c++ {
						sum[c] += weight * float32(in.Data[base+c])
					}
				}
			}

			base := in.Index(x, y, 0)
			for c := 0; c < colour; c++ {
				out.Data[base+c] = clamp(int(sum[c]))
			}
			copy(out.Data[base+colour:base+in.Channels], in.Data[base+colour:base+in.Channels])
		}
	}

	return out
}

func clamp(v int) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}
