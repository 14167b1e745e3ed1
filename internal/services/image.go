package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"soap-storefront/internal/config"
)

// ImageUpload is a prepared product image ready to forward as a multipart part
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	Width       int
	Height      int
}

var (
	ErrImageTooLarge     = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// ImagePreparer validates admin product uploads and shrinks oversized images
// before they are sent to the backend, which hosts them.
type ImagePreparer struct {
	maxBytes     int64
	maxDimension int
	quality      int
}

func NewImagePreparer(cfg config.UploadConfig) *ImagePreparer {
	return &ImagePreparer{
		maxBytes:     cfg.MaxImageBytes,
		maxDimension: cfg.MaxImageDimension,
		quality:      85,
	}
}

// Prepare reads, validates and (when needed) resizes the image. WebP input is
// re-encoded as JPEG since only decoding is available for it.
func (p *ImagePreparer) Prepare(reader io.Reader, filename string) (*ImageUpload, error) {
	limit := p.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}

	data, err := io.ReadAll(io.LimitReader(reader, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %d bytes allowed", ErrImageTooLarge, limit)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	if !isValidImageFormat(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	bounds := img.Bounds()
	resized := false
	if p.maxDimension > 0 && (bounds.Dx() > p.maxDimension || bounds.Dy() > p.maxDimension) {
		img = imaging.Fit(img, p.maxDimension, p.maxDimension, imaging.Lanczos)
		resized = true
	}

	outFormat := format
	if outFormat == "webp" {
		outFormat = "jpeg"
	}

	upload := &ImageUpload{
		Filename:    imageFilename(filename, outFormat),
		ContentType: getContentType(outFormat),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}

	if !resized && outFormat == format {
		upload.Data = data
		return upload, nil
	}

	encoded, err := p.encode(img, outFormat)
	if err != nil {
		return nil, err
	}
	upload.Data = encoded
	return upload, nil
}

func (p *ImagePreparer) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg", "jpg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case "png":
		encoder := &png.Encoder{CompressionLevel: png.BestCompression}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}

// imageFilename keeps the original base name and adds a short unique suffix
func imageFilename(filename, format string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(base), " ", "-"))
	if base == "" || base == "." {
		base = "product"
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}

	return fmt.Sprintf("%s-%s.%s", base, uuid.New().String()[:8], ext)
}

func isValidImageFormat(format string) bool {
	switch format {
	case "jpeg", "jpg", "png", "webp":
		return true
	default:
		return false
	}
}

func getContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
