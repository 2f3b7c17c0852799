// Package gallery holds the presentation logic of the media gallery:
// filtering by kind, newest-first ordering and card formatting.
// Nothing here is persisted; views are recomputed from the store's list.
package gallery

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/models"
)

type Filter string

const (
	FilterAll    Filter = "all"
	FilterImages Filter = "images"
	FilterVideos Filter = "videos"
)

// ParseFilter accepts all, images or videos (case-insensitive). An empty
// string means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterImages, FilterVideos:
		return f, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, images or videos)", s)
	}
}

func (f Filter) Match(e models.MediaEntry) bool {
	switch f {
	case FilterImages:
		return e.IsImage()
	case FilterVideos:
		return e.IsVideo()
	default:
		return true
	}
}

// View returns the entries matching f, newest first. Entries with equal
// timestamps keep their insertion order.
func View(entries []models.MediaEntry, f Filter) []models.MediaEntry {
	out := make([]models.MediaEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	}
}

func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

// EmptyHint is shown when a view has no entries.
func EmptyHint(f Filter) string {
	if f == FilterAll || f == "" {
		return "Upload some files to get started"
	}
	return "Try changing your filter or upload new " + string(f)
}

// Card is the display form of one entry.
type Card struct {
	ID        string
	Name      string
	Kind      models.MediaKind
	Date      string
	Size      string
	Thumbnail string
}

func Cards(entries []models.MediaEntry, f Filter) []Card {
	view := View(entries, f)
	cards := make([]Card, 0, len(view))
	for _, e := range view {
		cards = append(cards, Card{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind(),
			Date:      FormatDate(e.CreatedAt),
			Size:      FormatSize(e.SizeBytes),
			Thumbnail: e.ThumbnailURL,
		})
	}
	return cards
}
