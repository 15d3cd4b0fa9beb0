package domain

import "errors"

var (
	// Download errors
	ErrDownloadTimeout = errors.New("download timed out")
	ErrDownloadFailed  = errors.New("download failed")
	ErrAudioNotFound   = errors.New("no audio file produced by download")

	// Engine errors. Both abort the whole run: nothing can be
	// transcribed without a loaded engine.
	ErrEngineNotLoaded = errors.New("transcription engine not loaded")
	ErrModelNotFound   = errors.New("model not found")
	ErrToolMissing     = errors.New("required external tool not found")

	// Recovered: a corrupt index degrades to a cold cache.
	ErrCacheCorrupt = errors.New("cache index corrupt")

	// Translation is best-effort and never aborts a batch.
	ErrTranslationFailed = errors.New("translation failed")
)
