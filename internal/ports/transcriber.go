package ports

import (
	"context"

	"github.com/ofarias/transcreva/internal/domain"
)

// Model represents a speech-to-text model.
type Model struct {
	Name        string
	Size        int64 // bytes
	Description string
	Downloaded  bool
}

// TranscribeOpts configures transcription behavior.
type TranscribeOpts struct {
	Model    string
	Language string // empty for auto-detect

	// OnLog receives one-off messages such as the duration estimate.
	OnLog ProgressFunc
	// OnTick receives the elapsed wall-clock time once per second
	// while transcription runs. No ticks arrive after Transcribe
	// returns.
	OnTick ProgressFunc
}

// Engine handles speech-to-text conversion.
type Engine interface {
	// Transcribe converts an audio file to a transcript. The result
	// always carries at least one segment.
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOpts) (*domain.Transcript, error)

	// Loaded reports whether the engine binary and the given model
	// are both present. A run must not start otherwise.
	Loaded(model string) bool

	// AvailableModels returns the list of known models.
	AvailableModels() []Model

	// IsModelDownloaded checks if a model is available locally.
	IsModelDownloaded(model string) bool

	// DownloadModel downloads a model with a progress callback.
	DownloadModel(ctx context.Context, model string, progress func(downloaded, total int64)) error

	// DeleteModel removes a downloaded model.
	DeleteModel(model string) error
}
