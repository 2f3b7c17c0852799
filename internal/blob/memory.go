package blob

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const memoryScheme = "blob:gophcloud/"

type memoryObject struct {
	contentType string
	data        []byte
}

// MemoryProvider keeps content in process memory, like browser blob URLs.
// References are never released, so the table grows with every upload.
type MemoryProvider struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: make(map[string]memoryObject)}
}

func (m *MemoryProvider) CreateReference(ctx context.Context, _ string, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	ref := memoryScheme + uuid.NewString()

	m.mu.Lock()
	m.objects[ref] = memoryObject{contentType: contentType, data: buf}
	m.mu.Unlock()

	return ref, nil
}

func (m *MemoryProvider) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	if !strings.HasPrefix(ref, "blob:") {
		return nil, ErrUnsupported
	}

	m.mu.RLock()
	obj, ok := m.objects[ref]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrStaleReference
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// Len reports how many references are held.
func (m *MemoryProvider) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
