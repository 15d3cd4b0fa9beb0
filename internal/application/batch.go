package application

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/history"
	"github.com/ofarias/transcreva/internal/ports"
	"github.com/ofarias/transcreva/pkg/log"
)

// ItemState is a work item's position in the pipeline.
type ItemState string

const (
	StatePending      ItemState = "pending"
	StateCacheCheck   ItemState = "cache_check"
	StateResolving    ItemState = "resolving"
	StateTranscribing ItemState = "transcribing"
	StateFormatting   ItemState = "formatting"
	StateTranslating  ItemState = "translating"
	StatePersisting   ItemState = "persisting"
	StateDone         ItemState = "done"
	StateFailed       ItemState = "failed"
)

// BatchOptions configures one orchestrator run.
type BatchOptions struct {
	Model          string
	Language       string // empty for auto-detect
	Format         string
	UseCache       bool
	KeepAudio      bool
	OutputDir      string
	Translate      bool
	TargetLanguage string
}

// ItemResult is the outcome of one work item.
type ItemResult struct {
	URL             string
	State           ItemState
	FromCache       bool
	Title           string
	OutputPath      string
	TranslationPath string
	AudioPath       string // retained audio, only with KeepAudio
	Text            string
	Err             error
	Duration        time.Duration
}

// BatchResult aggregates a whole run, in input order.
type BatchResult struct {
	Items            []ItemResult
	ConsolidatedPath string
	Successes        int
}

// ProgressEvent notifies the front-end about a work item advancing.
type ProgressEvent struct {
	Index   int // zero-based position in the batch
	Total   int
	URL     string
	State   ItemState
	Message string
}

// Orchestrator drives the pipeline over a list of URLs, one item at
// a time. Every collaborator is injected; the orchestrator owns the
// work directories and the output artifacts.
type Orchestrator struct {
	store      ports.TranscriptStore
	resolver   ports.AudioResolver
	engine     ports.Engine
	translator ports.Translator // nil disables translation
	runs       *history.Store   // nil disables history recording
	onProgress func(ProgressEvent)
}

func NewOrchestrator(
	store ports.TranscriptStore,
	resolver ports.AudioResolver,
	engine ports.Engine,
	translator ports.Translator,
	runs *history.Store,
	onProgress func(ProgressEvent),
) *Orchestrator {
	return &Orchestrator{
		store:      store,
		resolver:   resolver,
		engine:     engine,
		translator: translator,
		runs:       runs,
		onProgress: onProgress,
	}
}

// Run processes urls sequentially. A missing engine or model aborts
// before any item starts; everything after that is isolated per
// item, so one failure never stops the batch.
func (o *Orchestrator) Run(ctx context.Context, urls []string, opts BatchOptions) (*BatchResult, error) {
	if !o.engine.Loaded(opts.Model) {
		return nil, fmt.Errorf("%w: model %q", domain.ErrEngineNotLoaded, opts.Model)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BatchResult{Items: make([]ItemResult, 0, len(urls))}

	for i, url := range urls {
		item := o.processItem(ctx, i, len(urls), url, opts)
		if item.State == StateDone {
			result.Successes++
		}
		result.Items = append(result.Items, item)
		o.record(item)
	}

	if result.Successes > 0 {
		path, err := o.writeConsolidated(result, opts.OutputDir)
		if err != nil {
			log.Error("failed to write consolidated file: %v", err)
		} else {
			result.ConsolidatedPath = path
		}
	}

	log.Info("batch finished: %d/%d successes", result.Successes, len(urls))
	return result, nil
}

func (o *Orchestrator) processItem(ctx context.Context, index, total int, url string, opts BatchOptions) ItemResult {
	start := time.Now()
	item := ItemResult{URL: url, State: StatePending}

	emit := func(state ItemState, message string) {
		item.State = state
		if o.onProgress != nil {
			o.onProgress(ProgressEvent{Index: index, Total: total, URL: url, State: state, Message: message})
		}
		if message != "" {
			log.Info("[%d/%d] %s", index+1, total, message)
		}
	}
	fail := func(err error) ItemResult {
		item.State = StateFailed
		item.Err = err
		item.Duration = time.Since(start)
		emit(StateFailed, fmt.Sprintf("failed: %v", err))
		return item
	}

	emit(StateCacheCheck, fmt.Sprintf("processing %s", url))
	if opts.UseCache {
		if text, ok := o.store.Lookup(url); ok {
			item.FromCache = true
			item.Text = text
			outputPath, err := o.writeItemOutput(url, text, opts.OutputDir)
			if err != nil {
				return fail(err)
			}
			item.OutputPath = outputPath
			item.Duration = time.Since(start)
			emit(StateDone, "cache hit, skipping download and transcription")
			return item
		}
	}

	workDir, err := os.MkdirTemp("", "transcreva-*")
	if err != nil {
		return fail(err)
	}
	defer os.RemoveAll(workDir)

	emit(StateResolving, "resolving audio...")
	resolved, err := o.resolver.Resolve(ctx, url, workDir, func(msg string) {
		emit(StateResolving, msg)
	})
	if err != nil {
		return fail(err)
	}
	if resolved.Meta != nil {
		item.Title = resolved.Meta.Title
	}

	emit(StateTranscribing, "transcribing...")
	transcript, err := o.engine.Transcribe(ctx, resolved.AudioPath, ports.TranscribeOpts{
		Model:    opts.Model,
		Language: opts.Language,
		OnLog: func(msg string) {
			emit(StateTranscribing, msg)
		},
		OnTick: func(elapsed string) {
			emit(StateTranscribing, "transcribing... "+elapsed)
		},
	})
	if err != nil {
		return fail(err)
	}

	emit(StateFormatting, "formatting...")
	text := transcript.Format(opts.Format)
	item.Text = text

	emit(StatePersisting, "saving results...")
	if opts.UseCache {
		if err := o.store.Store(url, text, opts.Format); err != nil {
			// Cache write failures cost a future hit, not this item.
			log.Warn("failed to cache transcript for %s: %v", url, err)
		}
	}

	outputPath, err := o.writeItemOutput(url, text, opts.OutputDir)
	if err != nil {
		return fail(err)
	}
	item.OutputPath = outputPath

	if opts.Translate && o.translator != nil {
		emit(StateTranslating, fmt.Sprintf("translating to %s...", opts.TargetLanguage))
		translated := o.translator.Translate(ctx, text, opts.TargetLanguage)
		translationPath := translationPathFor(outputPath, opts.TargetLanguage)
		if err := os.WriteFile(translationPath, []byte(translated), 0644); err != nil {
			return fail(err)
		}
		item.TranslationPath = translationPath
	}

	if opts.KeepAudio {
		audioPath, err := o.retainAudio(url, resolved.AudioPath, opts.OutputDir)
		if err != nil {
			log.Warn("failed to retain audio for %s: %v", url, err)
		} else {
			item.AudioPath = audioPath
		}
	}

	item.Duration = time.Since(start)
	emit(StateDone, fmt.Sprintf("done in %s", domain.FormatElapsed(item.Duration)))
	return item
}

// writeItemOutput writes one per-item artifact with a random suffix
// so repeated runs never clobber each other.
func (o *Orchestrator) writeItemOutput(url, text, outputDir string) (string, error) {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	path := filepath.Join(outputDir, fmt.Sprintf("transcricao_%s.txt", suffix))

	content := fmt.Sprintf("URL: %s\n\n%s", url, text)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return path, nil
}

// translationPathFor tags the translated artifact with the language
// code: transcricao_ab12cd34.txt -> transcricao_ab12cd34.pt.txt
func translationPathFor(outputPath, targetLang string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + "." + targetLang + ext
}

// retainAudio copies the temporary audio asset to a stable location
// keyed by the cache key, before the work directory is released.
func (o *Orchestrator) retainAudio(url, audioPath, outputDir string) (string, error) {
	destPath := filepath.Join(outputDir, "audio_"+o.store.Key(url)+filepath.Ext(audioPath))

	src, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(destPath)
		return "", err
	}
	return destPath, nil
}

// writeConsolidated concatenates all successful outputs in input
// order, one delimited block per video.
func (o *Orchestrator) writeConsolidated(result *BatchResult, outputDir string) (string, error) {
	separator := strings.Repeat("=", 60)

	var sb strings.Builder
	n := 0
	for _, item := range result.Items {
		if item.State != StateDone {
			continue
		}
		n++
		sb.WriteString(separator)
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Video %d: %s\n", n, item.URL))
		if item.Title != "" {
			sb.WriteString(fmt.Sprintf("Title: %s\n", item.Title))
		}
		sb.WriteString(separator)
		sb.WriteString("\n\n")
		sb.WriteString(item.Text)
		sb.WriteString("\n\n")
	}

	path := filepath.Join(outputDir, "transcricoes_consolidadas.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (o *Orchestrator) record(item ItemResult) {
	if o.runs == nil {
		return
	}

	run := history.Run{
		URL:        item.URL,
		Status:     history.StatusDone,
		OutputPath: item.OutputPath,
		Duration:   item.Duration,
	}
	switch {
	case item.State == StateFailed:
		run.Status = history.StatusFailed
		if item.Err != nil {
			run.Error = item.Err.Error()
		}
	case item.FromCache:
		run.Status = history.StatusCached
	}

	if err := o.runs.Record(run); err != nil {
		log.Warn("failed to record run history: %v", err)
	}
}
