package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecoder struct {
	meta     Metadata
	probeErr error
	frameErr error
	frame    image.Image

	probedPath string
	seekAt     time.Duration
	spilled    []byte
}

func (f *fakeDecoder) Probe(_ context.Context, path string) (Metadata, error) {
	f.probedPath = path
	f.spilled, _ = os.ReadFile(path)
	return f.meta, f.probeErr
}

func (f *fakeDecoder) Frame(_ context.Context, _ string, at time.Duration) (image.Image, error) {
	f.seekAt = at
	return f.frame, f.frameErr
}

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	return img
}

func newTestThumbnailer(t *testing.T, d Decoder) *Thumbnailer {
	th := New(d, time.Second, "/placeholder.svg", logging.Discard())
	th.tempDir = t.TempDir()
	return th
}

func TestSeekPosition(t *testing.T) {
	tests := []struct {
		name           string
		want, duration time.Duration
		expected       time.Duration
	}{
		{"long video", time.Second, 10 * time.Second, time.Second},
		{"exactly one second", time.Second, time.Second, 500 * time.Millisecond},
		{"short video", time.Second, 400 * time.Millisecond, 200 * time.Millisecond},
		{"zero length", time.Second, 0, 0},
		{"unknown length", time.Second, -1, 0},
		{"zero want", 0, 10 * time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeekPosition(tt.want, tt.duration))
		})
	}
}

func TestDerive_ImageUsesContentRef(t *testing.T) {
	d := &fakeDecoder{}
	th := newTestThumbnailer(t, d)

	got, err := th.Derive(context.Background(), models.RawFile{Name: "a.jpg", Type: "image/jpeg"}, "blob:x")
	require.NoError(t, err)
	assert.Equal(t, "blob:x", got)
	assert.Empty(t, d.probedPath)
}

func TestDerive_OtherUsesPlaceholder(t *testing.T) {
	th := newTestThumbnailer(t, &fakeDecoder{})

	got, err := th.Derive(context.Background(), models.RawFile{Name: "a.pdf", Type: "application/pdf"}, "blob:x")
	require.NoError(t, err)
	assert.Equal(t, "/placeholder.svg", got)
}

func TestDerive_VideoSamplesFrame(t *testing.T) {
	d := &fakeDecoder{meta: Metadata{Duration: 5 * time.Second, Width: 4, Height: 4}, frame: solid(4, 4)}
	th := newTestThumbnailer(t, d)

	got, err := th.Derive(context.Background(), models.RawFile{Name: "c.mp4", Type: "video/mp4", Data: []byte("mp4data")}, "blob:x")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(got, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(got, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	assert.Equal(t, time.Second, d.seekAt)
	assert.Equal(t, []byte("mp4data"), d.spilled)
	assert.True(t, strings.HasSuffix(d.probedPath, ".mp4"))

	_, err = os.Stat(d.probedPath)
	assert.True(t, os.IsNotExist(err), "temp file must be removed")
}

func TestDerive_ShortVideoDoesNotFail(t *testing.T) {
	d := &fakeDecoder{meta: Metadata{Duration: 300 * time.Millisecond}, frame: solid(2, 2)}
	th := newTestThumbnailer(t, d)

	_, err := th.Derive(context.Background(), models.RawFile{Name: "s.webm", Type: "video/webm"}, "blob:x")
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, d.seekAt)
}

func TestDerive_VideoErrors(t *testing.T) {
	boom := errors.New("boom")
	file := models.RawFile{Name: "c.mp4", Type: "video/mp4"}

	cases := map[string]*fakeDecoder{
		"probe":       {probeErr: boom},
		"frame":       {meta: Metadata{Duration: time.Second}, frameErr: boom},
		"empty frame": {meta: Metadata{Duration: time.Second}},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newTestThumbnailer(t, d).Derive(context.Background(), file, "blob:x")
			assert.ErrorIs(t, err, ErrDecode)
		})
	}

	th := New(nil, time.Second, "/p.svg", logging.Discard())
	_, err := th.Derive(context.Background(), file, "blob:x")
	assert.ErrorIs(t, err, ErrDecode)
}
