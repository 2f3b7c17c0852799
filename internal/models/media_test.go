package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		mime string
		want MediaKind
	}{
		{"image/jpeg", KindImage},
		{"image/svg+xml", KindImage},
		{"video/mp4", KindVideo},
		{"application/pdf", KindOther},
		{"", KindOther},
		{"imagex/jpeg", KindOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.mime), tt.mime)
	}
}

func TestMediaEntry_DurableLayout(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	e := MediaEntry{
		ID: "m1", Name: "a.jpg", MimeType: "image/jpeg", SizeBytes: 2048,
		ContentURL: "blob:x", ThumbnailURL: "blob:x", CreatedAt: created, OwnerID: "u1",
	}

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	for _, key := range []string{"id", "name", "type", "size", "url", "thumbnail", "createdAt", "userId"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2024-03-01T12:30:00Z", raw["createdAt"])
}

func TestRawFile_SizeAndKind(t *testing.T) {
	f := RawFile{Name: "clip.mp4", Type: "video/mp4", Data: make([]byte, 10)}
	assert.Equal(t, int64(10), f.Size())
	assert.Equal(t, KindVideo, f.Kind())
}
