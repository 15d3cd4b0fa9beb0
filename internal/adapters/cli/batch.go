package cli

import (
	"context"
	"fmt"

	"github.com/ofarias/transcreva/internal/adapters/cli/tui"
	"github.com/ofarias/transcreva/internal/application"
	"github.com/ofarias/transcreva/internal/config"
)

// runBatch drives the whole pipeline over the given URLs.
func runBatch(urls []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	opts := batchOptions(app.Config)
	if opts.Language != "" {
		if err := config.ValidateLanguage(opts.Language); err != nil {
			return err
		}
	}
	if opts.Translate {
		if err := config.ValidateLanguage(opts.TargetLanguage); err != nil {
			return err
		}
	}

	ctx := context.Background()

	if err := ensureModel(ctx, app, opts.Model); err != nil {
		return err
	}

	progress := tui.NewBatchProgress(len(urls), quietFlag)

	orchestrator := application.NewOrchestrator(
		app.Store,
		app.Resolver,
		app.Engine,
		app.Translator(),
		app.History,
		func(ev application.ProgressEvent) {
			switch ev.State {
			case application.StateDone:
				progress.AddResult(ev.URL, true, "")
			case application.StateFailed:
				progress.AddResult(ev.URL, false, ev.Message)
			default:
				progress.Update(ev.Index, ev.URL, ev.Message)
			}
		},
	)

	result, err := orchestrator.Run(ctx, urls, opts)
	if err != nil {
		return err
	}

	progress.Complete(result.Successes)

	if !quietFlag && result.ConsolidatedPath != "" {
		fmt.Printf("Consolidated transcript: %s\n", result.ConsolidatedPath)
	}

	return nil
}

// batchOptions merges flags over the configured defaults.
func batchOptions(cfg *config.Config) application.BatchOptions {
	opts := application.BatchOptions{
		Model:          cfg.Defaults.Model,
		Language:       cfg.Defaults.Language,
		Format:         cfg.Defaults.Format,
		UseCache:       cfg.Defaults.UseCache,
		KeepAudio:      cfg.Defaults.KeepAudio,
		OutputDir:      cfg.Defaults.OutputDir,
		Translate:      cfg.Translate.Enabled,
		TargetLanguage: cfg.Translate.TargetLanguage,
	}

	if modelFlag != "" {
		opts.Model = modelFlag
	}
	if languageFlag != "" {
		opts.Language = languageFlag
	}
	if formatFlag != "" {
		opts.Format = formatFlag
	}
	if noCacheFlag {
		opts.UseCache = false
	}
	if keepAudioFlag {
		opts.KeepAudio = true
	}
	if outputDirFlag != "" {
		opts.OutputDir = outputDirFlag
	}
	if translateFlag {
		opts.Translate = true
	}
	if targetLangFlag != "" {
		opts.TargetLanguage = targetLangFlag
	}

	return opts
}

// ensureModel downloads the whisper model on first use so a fresh
// install can transcribe without a separate setup step.
func ensureModel(ctx context.Context, app *App, model string) error {
	if model == "" || app.Engine.IsModelDownloaded(model) {
		return nil
	}

	fmt.Printf("Model %q not found locally, downloading...\n", model)
	err := app.Engine.DownloadModel(ctx, model, func(downloaded, total int64) {
		if total > 0 && !quietFlag {
			pct := float64(downloaded) / float64(total) * 100
			fmt.Printf("\rDownloading model: %.1f%%", pct)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to download model %q: %w", model, err)
	}

	fmt.Println("\nModel downloaded")
	return nil
}
