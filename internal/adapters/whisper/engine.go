package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/ofarias/transcreva/internal/config"
	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/ports"
)

// Model sizes in bytes (approximate)
var modelSizes = map[string]int64{
	"tiny":   75 * 1024 * 1024,
	"base":   140 * 1024 * 1024,
	"small":  462 * 1024 * 1024,
	"medium": 1500 * 1024 * 1024,
	"large":  3000 * 1024 * 1024,
}

// Engine implements ports.Engine using whisper.cpp
type Engine struct {
	modelsDir string
	binPath   string
}

// NewEngine creates a new whisper.cpp engine adapter
func NewEngine(modelsDir string) *Engine {
	if modelsDir == "" {
		modelsDir = config.ModelsDir()
	}
	return &Engine{modelsDir: modelsDir}
}

func modelURL(name string) string {
	return fmt.Sprintf("https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-%s.bin", name)
}

func (e *Engine) modelPath(name string) string {
	return filepath.Join(e.modelsDir, fmt.Sprintf("ggml-%s.bin", name))
}

func (e *Engine) AvailableModels() []ports.Model {
	models := []ports.Model{
		{Name: "tiny", Size: modelSizes["tiny"], Description: "~75MB, basic accuracy, very fast"},
		{Name: "base", Size: modelSizes["base"], Description: "~140MB, good accuracy, fast"},
		{Name: "small", Size: modelSizes["small"], Description: "~462MB, better accuracy, moderate speed"},
		{Name: "medium", Size: modelSizes["medium"], Description: "~1.5GB, great accuracy, slower"},
		{Name: "large", Size: modelSizes["large"], Description: "~3GB, best accuracy, slow"},
	}

	for i := range models {
		models[i].Downloaded = e.IsModelDownloaded(models[i].Name)
	}

	return models
}

func (e *Engine) IsModelDownloaded(model string) bool {
	_, err := os.Stat(e.modelPath(model))
	return err == nil
}

// Loaded reports whether a run can start: both the whisper binary
// and the requested model must be present.
func (e *Engine) Loaded(model string) bool {
	return e.findBinary() != "" && e.IsModelDownloaded(model)
}

func (e *Engine) DeleteModel(model string) error {
	return os.Remove(e.modelPath(model))
}

// Transcribe runs whisper.cpp over the audio file. Before the
// blocking call it reports a size-based duration estimate once via
// OnLog; while it runs, OnTick receives the elapsed time every
// second. The ticker is joined before returning, so no tick arrives
// after this method completes.
func (e *Engine) Transcribe(ctx context.Context, audioPath string, opts ports.TranscribeOpts) (*domain.Transcript, error) {
	model := opts.Model
	if model == "" {
		model = "base"
	}

	binPath := e.findBinary()
	if binPath == "" {
		return nil, fmt.Errorf("%w: whisper.cpp binary not found", domain.ErrEngineNotLoaded)
	}
	if !e.IsModelDownloaded(model) {
		return nil, fmt.Errorf("%w: model %q not downloaded", domain.ErrEngineNotLoaded, model)
	}

	if opts.OnLog != nil {
		opts.OnLog(e.estimateLine(audioPath, model))
	}

	outputBase := filepath.Join(os.TempDir(), fmt.Sprintf("transcreva_%d", time.Now().UnixNano()))

	args := []string{
		"-m", e.modelPath(model),
		"-f", audioPath,
		"-of", outputBase,
		"-oj", // JSON output
	}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}

	cmd := exec.CommandContext(ctx, binPath, args...)

	stop := startTicker(time.Second, opts.OnTick)
	err := cmd.Run()
	stop()

	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	jsonPath := outputBase + ".json"
	defer os.Remove(jsonPath)

	transcript, err := e.parseWhisperJSON(jsonPath, model, opts.Language)
	if err != nil {
		return nil, err
	}

	transcript.Normalize()
	return transcript, nil
}

// estimateLine builds the one-off estimate message from file size
// and the per-model factor. For mp3 input the real audio duration is
// appended when a cheap frame walk can determine it.
func (e *Engine) estimateLine(audioPath, model string) string {
	info, err := os.Stat(audioPath)
	if err != nil {
		return fmt.Sprintf("Transcribing with model %q...", model)
	}

	estimate := domain.EstimateTranscription(model, info.Size())
	line := fmt.Sprintf("Estimated transcription time: %s (model %q, %.1f MB)",
		domain.FormatElapsed(estimate), model, float64(info.Size())/(1024*1024))

	if strings.EqualFold(filepath.Ext(audioPath), ".mp3") {
		if dur, err := mp3Duration(audioPath); err == nil {
			line += fmt.Sprintf(", audio length %s", domain.FormatElapsed(dur))
		}
	}
	return line
}

func (e *Engine) findBinary() string {
	if e.binPath != "" {
		return e.binPath
	}

	names := []string{"whisper", "whisper-cli", "whisper-cpp", "main"}
	if runtime.GOOS == "windows" {
		names = []string{"whisper.exe", "whisper-cli.exe", "whisper-cpp.exe", "main.exe"}
	}

	// Check bundled location
	for _, name := range names {
		bundled := filepath.Join(config.BinDir(), name)
		if _, err := os.Stat(bundled); err == nil {
			e.binPath = bundled
			return bundled
		}
	}

	// Check PATH
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			e.binPath = path
			return path
		}
	}

	return ""
}

func (e *Engine) parseWhisperJSON(path string, model string, language string) (*domain.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var output struct {
		Transcription []struct {
			Timestamps struct {
				From string `json:"from"`
				To   string `json:"to"`
			} `json:"timestamps"`
			Text string `json:"text"`
		} `json:"transcription"`
	}

	if err := json.Unmarshal(data, &output); err != nil {
		return nil, err
	}

	var segments []domain.Segment
	var fullText strings.Builder

	for _, item := range output.Transcription {
		text := strings.TrimSpace(item.Text)

		segments = append(segments, domain.Segment{
			Start: parseTimestamp(item.Timestamps.From),
			End:   parseTimestamp(item.Timestamps.To),
			Text:  text,
		})

		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)
	}

	if language == "" {
		language = "auto"
	}

	return &domain.Transcript{
		Text:          fullText.String(),
		Segments:      segments,
		Model:         model,
		Language:      language,
		TranscribedAt: time.Now(),
	}, nil
}

var timestampRegex = regexp.MustCompile(`(\d+):(\d+):(\d+)[,.](\d+)`)

func parseTimestamp(ts string) float64 {
	matches := timestampRegex.FindStringSubmatch(ts)
	if len(matches) != 5 {
		return 0
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])
	millis, _ := strconv.Atoi(matches[4])

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}

// Ensure Engine implements interface
var _ ports.Engine = (*Engine)(nil)
