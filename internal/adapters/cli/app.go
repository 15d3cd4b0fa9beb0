package cli

import (
	"github.com/ofarias/transcreva/internal/adapters/cache"
	"github.com/ofarias/transcreva/internal/adapters/translate"
	"github.com/ofarias/transcreva/internal/adapters/whisper"
	"github.com/ofarias/transcreva/internal/adapters/ytdlp"
	"github.com/ofarias/transcreva/internal/application"
	"github.com/ofarias/transcreva/internal/config"
	"github.com/ofarias/transcreva/internal/history"
	"github.com/ofarias/transcreva/internal/ports"
	"github.com/ofarias/transcreva/pkg/log"
)

// App holds all application dependencies
type App struct {
	Config   *config.Config
	Store    ports.TranscriptStore
	Resolver ports.AudioResolver
	Engine   ports.Engine
	History  *history.Store

	CacheSvc *application.CacheService
}

// NewApp creates and wires up all dependencies
func NewApp() (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	store := cache.NewFileStore(config.CacheDir())
	resolver := ytdlp.NewResolver()
	engine := whisper.NewEngine("")

	runs, err := history.Open(config.HistoryPath())
	if err != nil {
		// History is a convenience, not a pipeline dependency.
		log.Warn("run history unavailable: %v", err)
		runs = nil
	}

	return &App{
		Config:   cfg,
		Store:    store,
		Resolver: resolver,
		Engine:   engine,
		History:  runs,
		CacheSvc: application.NewCacheService(store),
	}, nil
}

// Translator builds the translation adapter from config. Returns nil
// when no endpoint is configured.
func (a *App) Translator() ports.Translator {
	if a.Config.Translate.APIURL == "" {
		return nil
	}
	client := translate.NewClient(translate.ClientConfig{
		APIURL: a.Config.Translate.APIURL,
		APIKey: a.Config.Translate.APIKey,
		Model:  a.Config.Translate.Model,
	})
	return translate.NewLLMTranslator(client)
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp()
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
