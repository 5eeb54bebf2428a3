package pixbuf

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	buf := New(3, 2, 4)
	assert.Len(t, buf.Data, 24)
	assert.True(t, buf.Valid())

	empty := New(0, 2, 3)
	assert.Empty(t, empty.Data)
	assert.True(t, empty.Valid())
}

func TestIndex(t *testing.T) {
	buf := New(4, 3, 3)
	assert.Equal(t, 0, buf.Index(0, 0, 0))
	assert.Equal(t, 5, buf.Index(1, 0, 2))
	assert.Equal(t, (2*4+3)*3+1, buf.Index(3, 2, 1))

	buf.Set(3, 2, 1, 42)
	assert.Equal(t, uint8(42), buf.Data[(2*4+3)*3+1])
	assert.Equal(t, uint8(42), buf.At(3, 2, 1))
}

func TestValid(t *testing.T) {
	buf := &PixelBuffer{Width: 2, Height: 2, Channels: 3, Data: make([]uint8, 11)}
	assert.False(t, buf.Valid())
}

func TestClone(t *testing.T) {
	buf := New(2, 1, 1)
	clone := buf.Clone()
	clone.Data[0] = 9
	assert.Equal(t, uint8(0), buf.Data[0])
}

func TestFromImage(t *testing.T) {
	t.Run("grey", func(t *testing.T) {
		img := image.NewGray(image.Rect(0, 0, 2, 2))
		copy(img.Pix, []uint8{1, 2, 3, 4})
		buf := FromImage(img)
		assert.Equal(t, 1, buf.Channels)
		assert.Equal(t, []uint8{1, 2, 3, 4}, buf.Data)
	})

	t.Run("opaque colour has three channels", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.Set(0, 0, color.RGBA{10, 20, 30, 255})
		img.Set(1, 0, color.RGBA{40, 50, 60, 255})
		buf := FromImage(img)
		assert.Equal(t, 3, buf.Channels)
		if diff := cmp.Diff([]uint8{10, 20, 30, 40, 50, 60}, buf.Data); diff != "" {
			t.Errorf("unexpected data (-want +got):\n%s", diff)
		}
	})

	t.Run("transparency keeps straight alpha", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 128})
		buf := FromImage(img)
		assert.Equal(t, 4, buf.Channels)
		assert.Equal(t, []uint8{200, 100, 50, 128}, buf.Data)
	})

	t.Run("offset bounds", func(t *testing.T) {
		img := image.NewGray(image.Rect(5, 5, 7, 6))
		img.SetGray(5, 5, color.Gray{7})
		img.SetGray(6, 5, color.Gray{8})
		buf := FromImage(img)
		assert.Equal(t, 2, buf.Width)
		assert.Equal(t, 1, buf.Height)
		assert.Equal(t, []uint8{7, 8}, buf.Data)
	})
}

func TestToImage(t *testing.T) {
	t.Run("grey", func(t *testing.T) {
		buf := &PixelBuffer{Width: 2, Height: 1, Channels: 1, Data: []uint8{9, 10}}
		img, ok := buf.ToImage().(*image.Gray)
		assert.True(t, ok)
		assert.Equal(t, []uint8{9, 10}, img.Pix)
	})

	t.Run("grey with alpha", func(t *testing.T) {
		buf := &PixelBuffer{Width: 1, Height: 1, Channels: 2, Data: []uint8{9, 10}}
		img := buf.ToImage().(*image.NRGBA)
		assert.Equal(t, color.NRGBA{9, 9, 9, 10}, img.NRGBAAt(0, 0))
	})

	t.Run("round trip", func(t *testing.T) {
		for _, channels := range []int{1, 3, 4} {
			buf := New(3, 2, channels)
			for i := range buf.Data {
				buf.Data[i] = uint8(i*11 + 1)
			}
			if channels == 4 {
				for i := 3; i < len(buf.Data); i += 4 {
					buf.Data[i] = 77
				}
			}
			got := FromImage(buf.ToImage())
			assert.Equal(t, buf, got, "channels=%d", channels)
		}
	})
}

type reverse struct{}

func (reverse) Name() string { return "reverse" }

func (reverse) Process(in *PixelBuffer) *PixelBuffer {
	out := in.Clone()
	for i, j := 0, len(out.Data)-1; i < j; i, j = i+1, j-1 {
		out.Data[i], out.Data[j] = out.Data[j], out.Data[i]
	}
	return out
}

func TestFanout(t *testing.T) {
	in := &PixelBuffer{Width: 3, Height: 1, Channels: 1, Data: []uint8{1, 2, 3}}
	results := Fanout(in, reverse{}, reverse{})
	assert.Len(t, results, 2)
	// each stage sees the original input, not the previous result
	assert.Equal(t, []uint8{3, 2, 1}, results[0].Data)
	assert.Equal(t, []uint8{3, 2, 1}, results[1].Data)
	assert.Equal(t, []uint8{1, 2, 3}, in.Data)
}
