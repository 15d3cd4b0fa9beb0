package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ofarias/transcreva/internal/config"
	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
)

const (
	// Generous bound for long videos on slow links.
	downloadTimeout = 600 * time.Second
	metadataTimeout = 30 * time.Second
)

// ExecResolver extracts audio by shelling out to the yt-dlp binary.
type ExecResolver struct {
	binPath string
	timeout time.Duration
}

func NewExecResolver() *ExecResolver {
	return &ExecResolver{timeout: downloadTimeout}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func ffmpegBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}

func (r *ExecResolver) findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (r *ExecResolver) GetBinaryPath() string {
	if r.binPath != "" {
		return r.binPath
	}
	r.binPath = r.findBinary()
	return r.binPath
}

func (r *ExecResolver) IsAvailable() bool {
	return r.GetBinaryPath() != ""
}

func (r *ExecResolver) Strategy() string {
	return "yt-dlp"
}

// Resolve downloads url's audio track as mp3 into workDir. The
// deterministic output template makes the produced file discoverable
// by glob, which is the ground truth for success regardless of what
// the tool's exit code claims.
func (r *ExecResolver) Resolve(ctx context.Context, url string, workDir string, onProgress ports.ProgressFunc) (*ports.ResolveResult, error) {
	binPath := r.GetBinaryPath()
	if binPath == "" {
		return nil, fmt.Errorf("%w: yt-dlp", domain.ErrToolMissing)
	}

	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if onProgress != nil {
		onProgress("Downloading audio...")
	}

	template := filepath.Join(workDir, "audio.%(ext)s")
	args := []string{
		"--no-warnings",
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
		"-o", template,
		url,
	}

	run := func() error {
		cmd := exec.CommandContext(ctx, binPath, args...)
		// Output (not Run) so a nonzero exit carries the captured
		// stderr in ExitError.Stderr; stdout is discarded.
		if _, err := cmd.Output(); err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return backoff.Permanent(domain.ErrDownloadTimeout)
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				stderr := strings.TrimSpace(string(exitErr.Stderr))
				if stderr == "" {
					stderr = err.Error()
				}
				return fmt.Errorf("%w: %s", domain.ErrDownloadFailed, stderr)
			}
			return fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(run, policy); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrDownloadTimeout
		}
		return nil, err
	}

	audioPath, err := findAudioFile(workDir)
	if err != nil {
		return nil, err
	}

	meta := r.ResolveMetadata(context.WithoutCancel(ctx), url)
	meta.URL = url

	return &ports.ResolveResult{AudioPath: audioPath, Meta: meta}, nil
}

// ResolveMetadata fetches the video title without downloading. Purely
// cosmetic: every failure path returns an empty title.
func (r *ExecResolver) ResolveMetadata(ctx context.Context, url string) *domain.VideoMeta {
	meta := &domain.VideoMeta{URL: url}

	binPath := r.GetBinaryPath()
	if binPath == "" {
		return meta
	}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binPath, "--no-warnings", "--dump-json", "--skip-download", url)
	output, err := cmd.Output()
	if err != nil {
		return meta
	}

	var info struct {
		Title    string  `json:"title"`
		Uploader string  `json:"uploader"`
		Duration float64 `json:"duration"`
	}
	if err := json.Unmarshal(output, &info); err != nil {
		return meta
	}

	meta.Title = info.Title
	meta.Uploader = info.Uploader
	meta.Duration = info.Duration
	return meta
}

// findAudioFile locates the single file produced by the output
// template, ignoring partial downloads.
func findAudioFile(workDir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(workDir, "audio.*"))
	if err != nil {
		return "", err
	}

	for _, m := range matches {
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".tmp") {
			continue
		}
		return m, nil
	}

	return "", domain.ErrAudioNotFound
}

func findFFmpeg() string {
	bundled := filepath.Join(config.BinDir(), ffmpegBinaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}
	if path, err := exec.LookPath(ffmpegBinaryName()); err == nil {
		return path
	}
	return ""
}

var _ ports.AudioResolver = (*ExecResolver)(nil)
