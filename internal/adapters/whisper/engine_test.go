package whisper

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
)

func TestAvailableModels(t *testing.T) {
	e := NewEngine(t.TempDir())
	models := e.AvailableModels()

	require.Len(t, models, 5)

	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
		assert.NotZero(t, m.Size, "model %s has zero size", m.Name)
		assert.False(t, m.Downloaded)
	}
	assert.Equal(t, []string{"tiny", "base", "small", "medium", "large"}, names)
}

func TestModelURL(t *testing.T) {
	assert.Equal(t,
		"https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		modelURL("small"))
}

func TestIsModelDownloaded(t *testing.T) {
	dir := t.TempDir()
	e := NewEngine(dir)

	assert.False(t, e.IsModelDownloaded("small"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ggml-small.bin"), []byte("fake model"), 0644))
	assert.True(t, e.IsModelDownloaded("small"))
}

func TestDeleteModel(t *testing.T) {
	dir := t.TempDir()
	e := NewEngine(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ggml-tiny.bin"), []byte("fake model"), 0644))
	require.NoError(t, e.DeleteModel("tiny"))
	assert.False(t, e.IsModelDownloaded("tiny"))

	assert.Error(t, e.DeleteModel("tiny"))
}

func TestDownloadModelUnknown(t *testing.T) {
	e := NewEngine(t.TempDir())

	err := e.DownloadModel(context.Background(), "unknown-model", nil)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"00:00:00,000", 0.0},
		{"00:00:01,500", 1.5},
		{"00:01:00,000", 60.0},
		{"01:30:45,123", 5445.123},
		{"00:00:00.500", 0.5}, // period separator
		{"invalid", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseTimestamp(tt.input))
		})
	}
}

func TestParseWhisperJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out.json")
	payload := `{
		"transcription": [
			{"timestamps": {"from": "00:00:00,000", "to": "00:00:02,000"}, "text": " hello"},
			{"timestamps": {"from": "00:00:02,000", "to": "00:00:04,500"}, "text": " world "}
		]
	}`
	require.NoError(t, os.WriteFile(jsonPath, []byte(payload), 0644))

	e := NewEngine(dir)
	tr, err := e.parseWhisperJSON(jsonPath, "base", "")
	require.NoError(t, err)

	assert.Equal(t, "hello world", tr.Text)
	require.Len(t, tr.Segments, 2)
	assert.Equal(t, 2.0, tr.Segments[1].Start)
	assert.Equal(t, 4.5, tr.Segments[1].End)
	assert.Equal(t, "auto", tr.Language)
}

func TestTranscribeWithoutEngine(t *testing.T) {
	dir := t.TempDir()
	e := &Engine{modelsDir: dir, binPath: ""}
	t.Setenv("PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := e.Transcribe(context.Background(), filepath.Join(dir, "audio.mp3"), ports.TranscribeOpts{Model: "base"})
	assert.Error(t, err)
}

func TestTickerStopsCleanly(t *testing.T) {
	var mu sync.Mutex
	var ticks []string

	stop := startTicker(5*time.Millisecond, func(msg string) {
		mu.Lock()
		ticks = append(ticks, msg)
		mu.Unlock()
	})

	time.Sleep(30 * time.Millisecond)
	stop()

	mu.Lock()
	after := len(ticks)
	mu.Unlock()
	assert.Greater(t, after, 0)

	// No ticks may arrive once stop has returned.
	time.Sleep(30 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, after, len(ticks))
	mu.Unlock()
}

func TestTickerNilCallback(t *testing.T) {
	stop := startTicker(time.Millisecond, nil)
	stop()
}
