package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophcloud/internal/backend"
	"github.com/dmitrijs2005/gophcloud/internal/blob"
	"github.com/dmitrijs2005/gophcloud/internal/common"
	"github.com/dmitrijs2005/gophcloud/internal/localstore"
	"github.com/dmitrijs2005/gophcloud/internal/logging"
	"github.com/dmitrijs2005/gophcloud/internal/mediaid"
	"github.com/dmitrijs2005/gophcloud/internal/metrics"
	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/dmitrijs2005/gophcloud/internal/notify"
)

var (
	ErrUnauthenticated  = errors.New("you must be logged in")
	ErrUploadFailed     = errors.New("upload failed")
	ErrPersistenceWrite = errors.New("failed to save media list")
	ErrPersistenceParse = errors.New("corrupt media list")
)

// Deriver produces the thumbnail reference of an uploaded file.
type Deriver interface {
	Derive(ctx context.Context, file models.RawFile, contentRef string) (string, error)
}

type Store struct {
	kv       localstore.Store
	backend  backend.Backend
	blobs    blob.Provider
	thumbs   Deriver
	notifier notify.Notifier
	logger   logging.Logger
	metrics  *metrics.Metrics

	newID func() string
	now   func() time.Time

	mu         sync.RWMutex
	owner      *models.Identity
	entries    []models.MediaEntry
	generation uint64

	inflight atomic.Int32
}

func NewStore(
	kv localstore.Store,
	b backend.Backend,
	blobs blob.Provider,
	thumbs Deriver,
	n notify.Notifier,
	logger logging.Logger,
	m *metrics.Metrics,
) *Store {
	return &Store{
		kv:       kv,
		backend:  b,
		blobs:    blobs,
		thumbs:   thumbs,
		notifier: n,
		logger:   logger.With("module", "files"),
		metrics:  m,
		newID:    mediaid.New,
		now:      time.Now,
		entries:  []models.MediaEntry{},
	}
}

// Reload swaps in the list stored for identity. A nil identity resets the
// list. Unreadable or corrupt records yield an empty list.
func (s *Store) Reload(ctx context.Context, identity *models.Identity) {
	var (
		owner   *models.Identity
		entries = []models.MediaEntry{}
	)

	if identity != nil {
		id := *identity
		owner = &id

		loaded, err := s.load(ctx, id.ID)
		if err != nil {
			s.logger.Error(ctx, "failed to load media list", "owner", id.ID, "error", err)
		} else {
			entries = loaded
		}
	}

	s.mu.Lock()
	s.owner = owner
	s.entries = entries
	s.generation++
	s.mu.Unlock()

	if owner != nil {
		s.logger.Debug(ctx, "media list loaded", "owner", owner.ID, "count", len(entries))
	}
}

func (s *Store) load(ctx context.Context, ownerID string) ([]models.MediaEntry, error) {
	raw, ok, err := s.kv.Get(ctx, common.FilesKey(ownerID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.MediaEntry{}, nil
	}

	var stored []models.MediaEntry
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceParse, err)
	}

	entries := make([]models.MediaEntry, 0, len(stored))
	for _, e := range stored {
		if e.OwnerID != ownerID {
			s.logger.Warn(ctx, "skipping foreign media entry", "id", e.ID, "owner", e.OwnerID)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// persist writes entries to the owner's slot, including an empty list.
func (s *Store) persist(ctx context.Context, ownerID string, entries []models.MediaEntry) error {
	if entries == nil {
		entries = []models.MediaEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	if err := s.kv.Set(ctx, common.FilesKey(ownerID), string(b)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
	}
	return nil
}

// List returns a copy of the current list in insertion order.
func (s *Store) List() []models.MediaEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.MediaEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Owner returns the identity the list belongs to, or nil.
func (s *Store) Owner() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.owner == nil {
		return nil
	}
	id := *s.owner
	return &id
}

func (s *Store) Get(id string) (models.MediaEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.MediaEntry{}, false
}

// InFlight reports the number of uploads that have not finished yet.
func (s *Store) InFlight() int {
	return int(s.inflight.Load())
}

// Upload stores file for the current identity and appends its entry.
// MIME types are expected to be checked by the caller.
func (s *Store) Upload(ctx context.Context, file models.RawFile) (models.MediaEntry, error) {
	s.mu.RLock()
	owner := s.owner
	generation := s.generation
	s.mu.RUnlock()

	if owner == nil {
		s.notifier.Error("You must be logged in to upload files")
		return models.MediaEntry{}, ErrUnauthenticated
	}

	s.inflight.Add(1)
	defer s.inflight.Add(-1)

	entry, err := s.upload(ctx, *owner, generation, file)
	s.metrics.Upload(string(file.Kind()), file.Size(), err)
	if err != nil {
		s.logger.Warn(ctx, "upload failed", "name", file.Name, "error", err)
		s.notifier.Error("Upload failed: " + err.Error())
		return models.MediaEntry{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	s.logger.Info(ctx, "media uploaded", "id", entry.ID, "name", entry.Name, "bytes", entry.SizeBytes)
	s.notifier.Success(file.Name + " uploaded successfully!")
	return entry, nil
}

func (s *Store) upload(ctx context.Context, owner models.Identity, generation uint64, file models.RawFile) (models.MediaEntry, error) {
	if err := s.backend.Upload(ctx, file); err != nil {
		return models.MediaEntry{}, err
	}

	ref, err := s.blobs.CreateReference(ctx, file.Name, file.Type, file.Data)
	if err != nil {
		return models.MediaEntry{}, fmt.Errorf("content reference: %w", err)
	}

	thumb, err := s.thumbs.Derive(ctx, file, ref)
	if err != nil {
		return models.MediaEntry{}, fmt.Errorf("thumbnail: %w", err)
	}

	entry := models.MediaEntry{
		ID:           s.newID(),
		Name:         file.Name,
		MimeType:     file.Type,
		SizeBytes:    file.Size(),
		ContentURL:   ref,
		ThumbnailURL: thumb,
		CreatedAt:    s.now().UTC(),
		OwnerID:      owner.ID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return models.MediaEntry{}, errors.New("identity changed during upload")
	}
	if err := ctx.Err(); err != nil {
		return models.MediaEntry{}, err
	}

	next := make([]models.MediaEntry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, entry)

	if err := s.persist(ctx, owner.ID, next); err != nil {
		return models.MediaEntry{}, err
	}

	s.entries = next
	return entry, nil
}

// Delete removes the entry with id. An unknown id is a no-op. The list is
// persisted before the change becomes visible.
func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.delete(ctx, id)
	s.metrics.Delete(err)

	switch {
	case errors.Is(err, ErrUnauthenticated):
		s.notifier.Error("You must be logged in to delete files")
		return err
	case err != nil:
		s.logger.Error(ctx, "delete failed", "id", id, "error", err)
		s.notifier.Error("Failed to delete file")
		return err
	}

	s.logger.Info(ctx, "media deleted", "id", id)
	s.notifier.Success("File deleted successfully")
	return nil
}

func (s *Store) delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owner == nil {
		return ErrUnauthenticated
	}

	next := make([]models.MediaEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}

	if err := s.persist(ctx, s.owner.ID, next); err != nil {
		return err
	}

	s.entries = next
	return nil
}

// Open returns the content of the entry with id.
func (s *Store) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	entry, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("media %s: %w", id, common.ErrNotFound)
	}

	rc, err := s.blobs.Open(ctx, entry.ContentURL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", entry.Name, err)
	}
	return rc, nil
}
