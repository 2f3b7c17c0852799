// Package thumbnail derives gallery thumbnails for uploaded media.
//
// Images are their own thumbnail. Videos are decoded, a single frame is
// sampled and encoded as an inline JPEG data URL. Anything else gets a
// static placeholder.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/dmitrijs2005/gophcloud/internal/models"
)

const jpegQuality = 80

var ErrDecode = errors.New("video decode failed")

// Metadata is what a decoder reports about a video.
type Metadata struct {
	Duration time.Duration
	Width    int
	Height   int
}

// Decoder reads video metadata and renders single frames.
type Decoder interface {
	Probe(ctx context.Context, path string) (Metadata, error)
	Frame(ctx context.Context, path string, at time.Duration) (image.Image, error)
}

type Thumbnailer struct {
	decoder     Decoder
	at          time.Duration
	placeholder string
	tempDir     string
	logger      logging.Logger
}

func New(decoder Decoder, at time.Duration, placeholder string, logger logging.Logger) *Thumbnailer {
	return &Thumbnailer{
		decoder:     decoder,
		at:          at,
		placeholder: placeholder,
		logger:      logger.With("module", "thumbnail"),
	}
}

// SeekPosition returns the frame offset to sample from a video of the given
// duration. Videos shorter than want are sampled at their midpoint.
func SeekPosition(want, duration time.Duration) time.Duration {
	switch {
	case duration <= 0 || want <= 0:
		return 0
	case want >= duration:
		return duration / 2
	default:
		return want
	}
}

// Derive returns the thumbnail reference for file, whose content is
// available under contentRef.
func (t *Thumbnailer) Derive(ctx context.Context, file models.RawFile, contentRef string) (string, error) {
	switch file.Kind() {
	case models.KindImage:
		return contentRef, nil
	case models.KindVideo:
		return t.videoFrame(ctx, file)
	default:
		return t.placeholder, nil
	}
}

func (t *Thumbnailer) videoFrame(ctx context.Context, file models.RawFile) (string, error) {
	if t.decoder == nil {
		return "", fmt.Errorf("%w: no decoder configured", ErrDecode)
	}

	tmp, err := os.CreateTemp(t.tempDir, "gophcloud-*"+filepath.Ext(file.Name))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(file.Data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to spill video: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to spill video: %w", err)
	}

	meta, err := t.decoder.Probe(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	at := SeekPosition(t.at, meta.Duration)
	t.logger.Debug(ctx, "sampling video frame", "name", file.Name, "duration", meta.Duration, "at", at)

	img, err := t.decoder.Frame(ctx, path, at)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if img == nil {
		return "", fmt.Errorf("%w: empty frame", ErrDecode)
	}

	return EncodeDataURL(img)
}

// EncodeDataURL encodes img as a JPEG data URL.
func EncodeDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("jpeg encode: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
