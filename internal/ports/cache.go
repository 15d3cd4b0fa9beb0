package ports

// CacheEntry describes one stored transcript in the index.
type CacheEntry struct {
	URL    string `json:"url"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// TranscriptStore handles persistent caching of formatted
// transcripts, keyed by a digest of the source URL.
type TranscriptStore interface {
	// Key returns the store's key for a URL. Deterministic: the same
	// URL always yields the same key.
	Key(url string) string

	// Lookup returns the stored text for url. The second return is
	// false on a miss; a miss is never an error.
	Lookup(url string) (string, bool)

	// Store writes the content file and upserts the index entry.
	Store(url, text, format string) error

	// Clear deletes the whole store and reports whether anything
	// existed. A missing store directory is not an error.
	Clear() (bool, error)

	// Stats returns entry count and total content size in bytes.
	Stats() (int, int64, error)
}
