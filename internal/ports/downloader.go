package ports

import (
	"context"

	"github.com/ofarias/transcreva/internal/domain"
)

// ProgressFunc receives human-readable progress messages from a
// long-running operation.
type ProgressFunc func(message string)

// ResolveResult contains the result of an audio resolution.
type ResolveResult struct {
	AudioPath string // path to the extracted audio file inside workDir
	Meta      *domain.VideoMeta
}

// AudioResolver turns a remote video URL into a local audio file.
type AudioResolver interface {
	// Resolve downloads and extracts the audio track of url into
	// workDir. The returned path points inside workDir; the caller
	// owns the directory's lifetime.
	Resolve(ctx context.Context, url string, workDir string, onProgress ProgressFunc) (*ResolveResult, error)

	// ResolveMetadata fetches a best-effort title for url. It never
	// fails: on any error the returned meta carries an empty title.
	ResolveMetadata(ctx context.Context, url string) *domain.VideoMeta

	// IsAvailable reports whether the resolver's backing tool or
	// library is usable.
	IsAvailable() bool

	// Strategy names the active download strategy. It is fixed at
	// construction and never changes mid-run.
	Strategy() string
}
