package ytdlp

import (
	"github.com/ofarias/transcreva/internal/ports"
	"github.com/ofarias/transcreva/pkg/log"
)

// NewResolver picks the download strategy exactly once. The whole
// run uses either the external binary or the in-process library,
// never both.
func NewResolver() ports.AudioResolver {
	execResolver := NewExecResolver()
	if execResolver.IsAvailable() {
		log.Debug("using yt-dlp binary at %s", execResolver.GetBinaryPath())
		return execResolver
	}

	log.Info("yt-dlp not found, falling back to in-process downloader")
	return NewLibraryResolver()
}
