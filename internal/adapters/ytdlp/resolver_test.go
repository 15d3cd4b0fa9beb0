package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofarias/transcreva/internal/domain"
)

func TestFindAudioFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "audio.mp3"), []byte("x"), 0644))

	path, err := findAudioFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio.mp3"), path)
}

func TestFindAudioFile_IgnoresPartials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "audio.mp3.part"), []byte("x"), 0644))

	_, err := findAudioFile(dir)
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)
}

func TestFindAudioFile_Empty(t *testing.T) {
	_, err := findAudioFile(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)
}

func TestContainerExt(t *testing.T) {
	assert.Equal(t, "webm", containerExt(`audio/webm; codecs="opus"`))
	assert.Equal(t, "m4a", containerExt(`audio/mp4; codecs="mp4a.40.2"`))
	assert.Equal(t, "bin", containerExt("application/octet-stream"))
}

// writeFakeYtDlp stands in for the real binary so failure paths can
// be driven deterministically.
func writeFakeYtDlp(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}

	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestExecResolver_ResolveCarriesStderrDiagnostic(t *testing.T) {
	bin := writeFakeYtDlp(t, "#!/bin/sh\necho 'ERROR: unsupported url' >&2\nexit 1\n")
	r := &ExecResolver{binPath: bin, timeout: downloadTimeout}

	_, err := r.Resolve(context.Background(), "https://example.com/v/1", t.TempDir(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDownloadFailed)
	assert.Contains(t, err.Error(), "ERROR: unsupported url")
}

func TestExecResolver_ResolveTimeout(t *testing.T) {
	bin := writeFakeYtDlp(t, "#!/bin/sh\nsleep 5\n")
	r := &ExecResolver{binPath: bin, timeout: 100 * time.Millisecond}

	_, err := r.Resolve(context.Background(), "https://example.com/v/1", t.TempDir(), nil)
	assert.ErrorIs(t, err, domain.ErrDownloadTimeout)
}

func TestExecResolver_ExitZeroWithoutFile(t *testing.T) {
	// The tool's exit code is not trusted: no produced file means
	// failure even on exit 0.
	bin := writeFakeYtDlp(t, "#!/bin/sh\nexit 0\n")
	r := &ExecResolver{binPath: bin, timeout: downloadTimeout}

	_, err := r.Resolve(context.Background(), "https://example.com/v/1", t.TempDir(), nil)
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)
}

func TestExecResolver_ResolveMetadataWithoutBinary(t *testing.T) {
	r := &ExecResolver{binPath: filepath.Join(t.TempDir(), "missing")}
	r.binPath = ""
	r.timeout = downloadTimeout

	// Force discovery to fail by pointing at an empty PATH.
	t.Setenv("PATH", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	meta := r.ResolveMetadata(t.Context(), "https://example.com/v/1")
	assert.Equal(t, "https://example.com/v/1", meta.URL)
	assert.Empty(t, meta.Title)
}
