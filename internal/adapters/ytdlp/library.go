package ytdlp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
)

// LibraryResolver downloads audio in-process, without the yt-dlp
// binary. It only understands YouTube URLs, which is the tradeoff
// for having no external tool requirement.
type LibraryResolver struct {
	client     youtube.Client
	ffmpegPath string
}

func NewLibraryResolver() *LibraryResolver {
	return &LibraryResolver{ffmpegPath: findFFmpeg()}
}

func (r *LibraryResolver) IsAvailable() bool {
	return true
}

func (r *LibraryResolver) Strategy() string {
	return "library"
}

func (r *LibraryResolver) Resolve(ctx context.Context, url string, workDir string, onProgress ports.ProgressFunc) (*ports.ResolveResult, error) {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	video, err := r.client.GetVideoContext(ctx, url)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrDownloadTimeout
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}

	format := bestAudioFormat(video)
	if format == nil {
		return nil, fmt.Errorf("%w: no audio stream for %s", domain.ErrDownloadFailed, url)
	}

	if onProgress != nil {
		onProgress("Downloading audio stream...")
	}

	rawPath := filepath.Join(workDir, "audio.raw")
	if err := r.downloadStream(ctx, video, format, rawPath); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrDownloadTimeout
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}

	if r.ffmpegPath != "" {
		mp3Path := filepath.Join(workDir, "audio.mp3")
		cmd := exec.CommandContext(ctx, r.ffmpegPath, "-y", "-i", rawPath, "-vn", "-b:a", "192k", mp3Path)
		if out, err := cmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("%w: ffmpeg: %s", domain.ErrDownloadFailed, strings.TrimSpace(string(out)))
		}
		os.Remove(rawPath)
	} else {
		// No transcoder available. Keep the native container and
		// make the degradation visible to the caller.
		ext := containerExt(format.MimeType)
		nativePath := filepath.Join(workDir, "audio."+ext)
		if err := os.Rename(rawPath, nativePath); err != nil {
			return nil, err
		}
		if onProgress != nil {
			onProgress(fmt.Sprintf("ffmpeg not found, keeping native %s audio without conversion", ext))
		}
	}

	audioPath, err := findAudioFile(workDir)
	if err != nil {
		return nil, err
	}

	return &ports.ResolveResult{
		AudioPath: audioPath,
		Meta: &domain.VideoMeta{
			URL:      url,
			Title:    video.Title,
			Uploader: video.Author,
			Duration: video.Duration.Seconds(),
		},
	}, nil
}

func (r *LibraryResolver) ResolveMetadata(ctx context.Context, url string) *domain.VideoMeta {
	meta := &domain.VideoMeta{URL: url}

	ctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	video, err := r.client.GetVideoContext(ctx, url)
	if err != nil {
		return meta
	}

	meta.Title = video.Title
	meta.Uploader = video.Author
	meta.Duration = video.Duration.Seconds()
	return meta
}

func (r *LibraryResolver) downloadStream(ctx context.Context, video *youtube.Video, format *youtube.Format, destPath string) error {
	stream, _, err := r.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return err
	}
	defer stream.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, stream)
	return err
}

func bestAudioFormat(video *youtube.Video) *youtube.Format {
	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		return nil
	}

	best := &formats[0]
	for i := range formats {
		if formats[i].Bitrate > best.Bitrate {
			best = &formats[i]
		}
	}
	return best
}

func containerExt(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return "webm"
	case strings.Contains(mimeType, "mp4"):
		return "m4a"
	default:
		return "bin"
	}
}

var _ ports.AudioResolver = (*LibraryResolver)(nil)
