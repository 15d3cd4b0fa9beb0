package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
	"github.com/ofarias/transcreva/pkg/log"
)

const indexFile = "metadata.json"

// FileStore is a content-addressed transcript store. The index file
// maps md5(url) keys to entry metadata; each transcript lives in its
// own <key>.txt content file next to the index. The store is the
// single writer of its directory.
type FileStore struct {
	baseDir string
	index   map[string]ports.CacheEntry
}

func NewFileStore(baseDir string) *FileStore {
	s := &FileStore{
		baseDir: baseDir,
		index:   make(map[string]ports.CacheEntry),
	}
	if err := s.loadIndex(); err != nil {
		log.Warn("starting with a cold cache: %v", err)
	}
	return s
}

// loadIndex reads the on-disk index. An unparsable index degrades to
// an empty one: the cache goes cold but the pipeline proceeds.
func (s *FileStore) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, indexFile))
	if err != nil {
		// A missing index is a fresh store, not corruption.
		return nil
	}
	if err := json.Unmarshal(data, &s.index); err != nil {
		s.index = make(map[string]ports.CacheEntry)
		return fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}
	return nil
}

// saveIndex rewrites the whole index atomically. Writes are
// infrequent and single-user, so consistency wins over throughput.
func (s *FileStore) saveIndex() error {
	data, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return err
	}

	tmp := filepath.Join(s.baseDir, indexFile+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(s.baseDir, indexFile))
}

func (s *FileStore) Key(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

func (s *FileStore) contentPath(key string) string {
	return filepath.Join(s.baseDir, key+".txt")
}

// Lookup returns the stored text for url. A hit requires both the
// index entry and the content file; any mismatch heals itself by
// reporting a miss.
func (s *FileStore) Lookup(url string) (string, bool) {
	key := s.Key(url)

	if _, ok := s.index[key]; !ok {
		return "", false
	}

	data, err := os.ReadFile(s.contentPath(key))
	if err != nil {
		// Index says yes, disk says no. Drop the stale entry.
		delete(s.index, key)
		return "", false
	}

	return string(data), true
}

func (s *FileStore) Store(url, text, format string) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	key := s.Key(url)
	if err := os.WriteFile(s.contentPath(key), []byte(text), 0644); err != nil {
		return err
	}

	s.index[key] = ports.CacheEntry{
		URL:    url,
		Format: format,
		Size:   int64(len(text)),
	}
	return s.saveIndex()
}

// Clear deletes the whole store directory and reports whether
// anything was there to delete.
func (s *FileStore) Clear() (bool, error) {
	if _, err := os.Stat(s.baseDir); os.IsNotExist(err) {
		return false, nil
	}

	existed := len(s.index) > 0
	if !existed {
		entries, err := os.ReadDir(s.baseDir)
		if err == nil && len(entries) > 0 {
			existed = true
		}
	}

	if err := os.RemoveAll(s.baseDir); err != nil {
		return false, err
	}

	s.index = make(map[string]ports.CacheEntry)
	return existed, nil
}

func (s *FileStore) Stats() (int, int64, error) {
	var total int64
	for key := range s.index {
		info, err := os.Stat(s.contentPath(key))
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return len(s.index), total, nil
}

var _ ports.TranscriptStore = (*FileStore)(nil)
