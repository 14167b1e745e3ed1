package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soap-storefront/internal/config"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestImagePreparer_ResizesLargeImages(t *testing.T) {
	p := NewImagePreparer(config.UploadConfig{MaxImageBytes: 5 << 20, MaxImageDimension: 100})

	upload, err := p.Prepare(bytes.NewReader(testPNG(t, 400, 200)), "Neem Soap.png")
	require.NoError(t, err)

	assert.Equal(t, 100, upload.Width)
	assert.Equal(t, 50, upload.Height)
	assert.Equal(t, "image/png", upload.ContentType)
	assert.True(t, strings.HasPrefix(upload.Filename, "neem-soap-"))
	assert.True(t, strings.HasSuffix(upload.Filename, ".png"))

	decoded, err := png.Decode(bytes.NewReader(upload.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
}

func TestImagePreparer_KeepsSmallImagesUntouched(t *testing.T) {
	p := NewImagePreparer(config.UploadConfig{MaxImageBytes: 5 << 20, MaxImageDimension: 1000})

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20)), nil))
	original := buf.Bytes()

	upload, err := p.Prepare(bytes.NewReader(original), "small.jpeg")
	require.NoError(t, err)
	assert.Equal(t, original, upload.Data)
	assert.Equal(t, "image/jpeg", upload.ContentType)
	assert.True(t, strings.HasSuffix(upload.Filename, ".jpg"))
}

func TestImagePreparer_Rejects(t *testing.T) {
	p := NewImagePreparer(config.UploadConfig{MaxImageBytes: 64, MaxImageDimension: 100})

	_, err := p.Prepare(bytes.NewReader(testPNG(t, 50, 50)), "big.png")
	assert.ErrorIs(t, err, ErrImageTooLarge)

	p = NewImagePreparer(config.UploadConfig{MaxImageBytes: 1 << 20})
	_, err = p.Prepare(strings.NewReader("definitely not an image"), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
