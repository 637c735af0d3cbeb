package storage

import (
	"context"
	"net/url"
	"sync"
	"time"

	appreport "github.com/ledgerbook/backend/internal/application/report"
)

var _ appreport.ArchiveStorage = (*MemoryArchiveStorage)(nil)

// MemoryArchiveStorage keeps archives in process memory. Used when object storage is disabled.
type MemoryArchiveStorage struct {
	// BaseURL prefixes generated download links
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryArchiveStorage creates an empty in-memory store
func NewMemoryArchiveStorage(baseURL string) *MemoryArchiveStorage {
	if baseURL == "" {
		baseURL = "memory://archives"
	}
	return &MemoryArchiveStorage{BaseURL: baseURL, objects: make(map[string]memoryObject)}
}

// Upload stores a copy of data under key
func (s *MemoryArchiveStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: buf, contentType: contentType}
	return nil
}

// GenerateDownloadURL returns a pseudo link for a stored key
func (s *MemoryArchiveStorage) GenerateDownloadURL(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, ErrEmptyKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/" + key + "?expires=" + url.QueryEscape(expiresAt.UTC().Format(time.RFC3339)), expiresAt, nil
}

// Object returns a stored object and its content type
func (s *MemoryArchiveStorage) Object(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.data, obj.contentType, ok
}

// Keys lists stored keys in no particular order
func (s *MemoryArchiveStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
