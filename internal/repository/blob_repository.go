package repository

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"pdf-book-reader/internal/domain"

	"github.com/google/uuid"
)

type blob struct {
	handle *domain.ResourceHandle
	data   []byte
}

// MemoryBlobRepository keeps selected files in memory behind blob: handles.
// Bytes are released when their handle is revoked.
type MemoryBlobRepository struct {
	mu     sync.RWMutex
	blobs  map[string]*blob
	logger domain.Logger
}

// NewMemoryBlobRepository creates an empty blob repository
func NewMemoryBlobRepository(logger domain.Logger) *MemoryBlobRepository {
	return &MemoryBlobRepository{
		blobs:  make(map[string]*blob),
		logger: logger,
	}
}

// Create stores data and returns a fresh handle for it
func (r *MemoryBlobRepository) Create(name, mediaType string, data []byte) (*domain.ResourceHandle, error) {
	if data == nil {
		return nil, fmt.Errorf("create blob for %q: no data", name)
	}

	id := uuid.New().String()
	handle := &domain.ResourceHandle{
		ID:        id,
		URL:       "blob:" + id,
		MediaType: mediaType,
		Size:      int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.blobs[id] = &blob{handle: handle, data: data}
	r.mu.Unlock()

	r.logger.Debug("Blob created", "handle", id, "name", name, "size", handle.Size)
	return handle, nil
}

// Open returns a reader over the bytes behind handleID
func (r *MemoryBlobRepository) Open(handleID string) (io.ReadSeeker, error) {
	data, err := r.Bytes(handleID)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Bytes returns the stored bytes. Callers must not modify them.
func (r *MemoryBlobRepository) Bytes(handleID string) ([]byte, error) {
	r.mu.RLock()
	b, ok := r.blobs[handleID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob %s: %w", handleID, domain.ErrHandleRevoked)
	}
	return b.data, nil
}

// Revoke ends the handle's scope and drops its bytes
func (r *MemoryBlobRepository) Revoke(handleID string) error {
	r.mu.Lock()
	_, ok := r.blobs[handleID]
	delete(r.blobs, handleID)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("blob %s: %w", handleID, domain.ErrHandleRevoked)
	}
	r.logger.Debug("Blob revoked", "handle", handleID)
	return nil
}

// Len reports how many handles are live
func (r *MemoryBlobRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
