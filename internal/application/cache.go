package application

import (
	"github.com/ofarias/transcreva/internal/ports"
)

// CacheStats holds cache statistics
type CacheStats struct {
	EntryCount int
	TotalSize  int64
}

// CacheService handles cache management operations
type CacheService struct {
	store ports.TranscriptStore
}

// NewCacheService creates a new cache service
func NewCacheService(store ports.TranscriptStore) *CacheService {
	return &CacheService{store: store}
}

// Stats returns cache statistics
func (s *CacheService) Stats() (*CacheStats, error) {
	count, size, err := s.store.Stats()
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		EntryCount: count,
		TotalSize:  size,
	}, nil
}

// Clear removes the whole cache and reports whether anything was
// there to remove.
func (s *CacheService) Clear() (bool, error) {
	return s.store.Clear()
}
