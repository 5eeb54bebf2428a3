package imageio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rm-hull/conv-pool/internal/pixbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(channels int) *pixbuf.PixelBuffer {
	buf := pixbuf.New(4, 3, channels)
	for i := range buf.Data {
		buf.Data[i] = uint8(i * 7)
	}
	if channels == 4 {
		for i := 3; i < len(buf.Data); i += 4 {
			buf.Data[i] = 200
		}
	}
	return buf
}

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("lossless formats round trip", func(t *testing.T) {
		for _, name := range []string{"out.png", "out.tiff", "out.bmp"} {
			for _, channels := range []int{1, 3, 4} {
				// bmp stores grey as a palette and alpha only at 32bpp
				if name == "out.bmp" && channels != 3 {
					continue
				}
				path := filepath.Join(dir, name)
				buf := sample(channels)
				require.NoError(t, Write(path, buf), name)

				got, err := Load(path)
				require.NoError(t, err, name)
				assert.Equal(t, buf.Width, got.Width, name)
				assert.Equal(t, buf.Height, got.Height, name)
				assert.Equal(t, buf.Channels, got.Channels, "%s channels=%d", name, channels)
				assert.Equal(t, buf.Data, got.Data, "%s channels=%d", name, channels)
			}
		}
	})

	t.Run("jpeg keeps dimensions", func(t *testing.T) {
		path := filepath.Join(dir, "out.jpeg")
		require.NoError(t, Write(path, sample(3)))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Width)
		assert.Equal(t, 3, got.Height)
		assert.Equal(t, 3, got.Channels)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.NotEmpty(t, loadErr.Reason)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.png")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
		_, err := Load(path)
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Contains(t, err.Error(), path)
	})
}

func TestWrite(t *testing.T) {
	t.Run("unknown extension", func(t *testing.T) {
		err := Write(filepath.Join(t.TempDir(), "out.xyz"), sample(3))
		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Contains(t, err.Error(), "unsupported image format")
	})

	t.Run("unwritable destination", func(t *testing.T) {
		err := Write(filepath.Join(t.TempDir(), "missing", "out.png"), sample(3))
		var writeErr *WriteError
		assert.ErrorAs(t, err, &writeErr)
	})

	t.Run("malformed buffer", func(t *testing.T) {
		buf := &pixbuf.PixelBuffer{Width: 2, Height: 2, Channels: 3, Data: make([]uint8, 5)}
		err := Write(filepath.Join(t.TempDir(), "out.png"), buf)
		assert.ErrorContains(t, err, "malformed")
	})
}

func TestEncodeDecode(t *testing.T) {
	var b bytes.Buffer
	buf := sample(4)
	require.NoError(t, Encode(&b, buf, PNG))

	got, err := Decode(&b)
	require.NoError(t, err)
	assert.Equal(t, buf, got)

	_, err = Decode(strings.NewReader("garbage"))
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		".png": PNG, "PNG": PNG, "jpg": JPEG, ".jpeg": JPEG, "bmp": BMP, ".tif": TIFF, "tiff": TIFF,
	}
	for name, want := range tests {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat(".gif")
	assert.Error(t, err)

	assert.Equal(t, ".jpg", JPEG.Ext())
	assert.Equal(t, ".png", PNG.Ext())
	assert.Equal(t, "image/png", PNG.ContentType())
}
