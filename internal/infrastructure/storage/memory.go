package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

var _ catalogapp.ImageStorage = (*MemoryObjectStorage)(nil)

// MemoryObjectStorage keeps objects in a map. Presigned URLs point at BaseURL
// and carry no signature; nothing serves them, so callers put objects in
// with Upload. The HTTP handler tests run the image endpoints on it.
type MemoryObjectStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryObjectStorage creates an empty store
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "http://storage.local"
	}
	return &MemoryObjectStorage{
		BaseURL: baseURL,
		objects: make(map[string][]byte),
	}
}

func (s *MemoryObjectStorage) url(op, key string, expiresAt time.Time) string {
	return s.BaseURL + "/" + op + "/" + url.PathEscape(key) + "?expires=" + expiresAt.UTC().Format(time.RFC3339)
}

// GenerateUploadURL returns a fake upload URL
func (s *MemoryObjectStorage) GenerateUploadURL(_ context.Context, key, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.url("upload", key, expiresAt), expiresAt, nil
}

// GenerateDownloadURL returns a fake download URL
func (s *MemoryObjectStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.url("download", key, expiresAt), expiresAt, nil
}

// Upload stores data under key
func (s *MemoryObjectStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = append([]byte(nil), data...)
	return nil
}

// DeleteObject removes key; deleting a missing key succeeds
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// ObjectExists reports whether key was uploaded
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}
