package models

import (
	"strings"
	"time"
)

// MediaKind classifies an entry by MIME type prefix.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
	KindOther MediaKind = "other"
)

// KindOf returns the media kind for a MIME type.
func KindOf(mimeType string) MediaKind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	default:
		return KindOther
	}
}

// MediaEntry is the metadata of one uploaded file plus references to its
// content and thumbnail. ContentURL and ThumbnailURL may be ephemeral.
type MediaEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"type"`
	SizeBytes    int64     `json:"size"`
	ContentURL   string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail"`
	CreatedAt    time.Time `json:"createdAt"`
	OwnerID      string    `json:"userId"`
}

func (m MediaEntry) Kind() MediaKind { return KindOf(m.MimeType) }

func (m MediaEntry) IsImage() bool { return m.Kind() == KindImage }

func (m MediaEntry) IsVideo() bool { return m.Kind() == KindVideo }

// RawFile is a file accepted at the intake boundary and handed to the store.
type RawFile struct {
	Name string
	Type string
	Data []byte
}

// Size reports the length of the file content in bytes.
func (f RawFile) Size() int64 { return int64(len(f.Data)) }

func (f RawFile) Kind() MediaKind { return KindOf(f.Type) }
