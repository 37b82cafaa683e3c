package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	"image/png"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"task_backend/internal/shared/apperr"
)

const (
	// MaxUploadSize is the largest accepted upload in bytes.
	MaxUploadSize = 1_000_000
	// AvatarSize is the width and height of every stored avatar.
	AvatarSize = 250
	// MaxPixels caps the declared dimensions of an image before it is decoded.
	MaxPixels = 40_000_000
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedFormats = map[string]struct{}{
	"jpeg": {},
	"png":  {},
}

// Ingestor turns an uploaded image into the canonical avatar blob.
type Ingestor struct {
	pool      *WorkerPool
	timeout   time.Duration
	maxPixels int
}

// NewIngestor creates an Ingestor that processes images on pool, each within timeout.
func NewIngestor(pool *WorkerPool, timeout time.Duration) *Ingestor {
	return &Ingestor{
		pool:      pool,
		timeout:   timeout,
		maxPixels: MaxPixels,
	}
}

type result struct {
	blob []byte
	err  error
}

// Accept validates the upload and returns a 250x250 PNG.
// Size is checked first, then the filename extension, then the image itself.
// Errors wrap apperr.ErrFileTooLarge or apperr.ErrUnsupportedMedia.
func (i *Ingestor) Accept(ctx context.Context, data []byte, filename string, size int64) ([]byte, error) {
	if size > MaxUploadSize || len(data) > MaxUploadSize {
		return nil, apperr.ErrFileTooLarge
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; !ok {
		return nil, apperr.ErrUnsupportedMedia
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	done := make(chan result, 1)
	job := func() {
		if err := ctx.Err(); err != nil {
			done <- result{err: err}
			return
		}
		blob, err := canonicalize(data, i.maxPixels)
		done <- result{blob: blob, err: err}
	}
	if err := i.pool.Submit(ctx, job); err != nil {
		return nil, i.interrupted(err)
	}

	select {
	case r := <-done:
		if r.err != nil {
			return nil, i.interrupted(r.err)
		}
		return r.blob, nil
	case <-ctx.Done():
		return nil, i.interrupted(ctx.Err())
	}
}

// interrupted maps a timeout to UnsupportedMedia. Client cancellation and pool shutdown pass through.
func (i *Ingestor) interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: image processing timed out", apperr.ErrUnsupportedMedia)
	}
	return err
}

// canonicalize decodes data and re-encodes it as an AvatarSize square PNG, ignoring aspect ratio.
func canonicalize(data []byte, maxPixels int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: file is not a valid image", apperr.ErrUnsupportedMedia)
	}
	if _, ok := allowedFormats[format]; !ok {
		return nil, apperr.ErrUnsupportedMedia
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxPixels {
		return nil, fmt.Errorf("%w: image dimensions are too large", apperr.ErrUnsupportedMedia)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: file is not a valid image", apperr.ErrUnsupportedMedia)
	}

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}
