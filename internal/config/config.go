package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Translate TranslateConfig `yaml:"translate"`
	Paths     PathsConfig     `yaml:"paths"`
}

// DefaultsConfig holds default pipeline options
type DefaultsConfig struct {
	Model     string `yaml:"model"`
	Language  string `yaml:"language"` // empty for auto-detect
	Format    string `yaml:"format"`
	OutputDir string `yaml:"output_dir"` // empty means current directory
	UseCache  bool   `yaml:"use_cache"`
	KeepAudio bool   `yaml:"keep_audio"`
}

// TranslateConfig configures the optional translation step
type TranslateConfig struct {
	Enabled        bool   `yaml:"enabled"`
	TargetLanguage string `yaml:"target_language"`
	APIURL         string `yaml:"api_url"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"-"` // env only, never written to disk
}

// PathsConfig holds custom path overrides
type PathsConfig struct {
	YtDlp string `yaml:"yt_dlp"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Model:    "base",
			Format:   "simple",
			UseCache: true,
		},
		Translate: TranslateConfig{
			TargetLanguage: "en",
			APIURL:         "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
		},
	}
}

// AppDir returns the application directory (~/.transcreva)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".transcreva"
	}
	return filepath.Join(home, ".transcreva")
}

// ModelsDir returns the models directory
func ModelsDir() string {
	return filepath.Join(AppDir(), "models")
}

// CacheDir returns the cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// HistoryPath returns the run-history database path
func HistoryPath() string {
	return filepath.Join(AppDir(), "history.db")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), ModelsDir(), CacheDir(), BinDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads .env then the config from the default path
func LoadDefault() (*Config, error) {
	_ = godotenv.Load()
	return Load(ConfigPath())
}

func (c *Config) applyEnv() {
	c.Defaults.Model = getEnvString("TRANSCREVA_MODEL", c.Defaults.Model)
	c.Defaults.Language = getEnvString("TRANSCREVA_LANGUAGE", c.Defaults.Language)
	c.Defaults.Format = getEnvString("TRANSCREVA_FORMAT", c.Defaults.Format)
	c.Defaults.OutputDir = getEnvString("TRANSCREVA_OUTPUT_DIR", c.Defaults.OutputDir)
	c.Translate.TargetLanguage = getEnvString("TRANSCREVA_TARGET_LANGUAGE", c.Translate.TargetLanguage)
	c.Translate.APIURL = getEnvString("TRANSCREVA_TRANSLATE_API_URL", c.Translate.APIURL)
	c.Translate.Model = getEnvString("TRANSCREVA_TRANSLATE_MODEL", c.Translate.Model)
	c.Translate.APIKey = getEnvString("TRANSCREVA_TRANSLATE_API_KEY", c.Translate.APIKey)
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Validate checks the language codes. Empty codes mean auto-detect
// and are always valid.
func (c *Config) Validate() error {
	if err := ValidateLanguage(c.Defaults.Language); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}
	if err := ValidateLanguage(c.Translate.TargetLanguage); err != nil {
		return fmt.Errorf("invalid target language: %w", err)
	}
	return nil
}

// ValidateLanguage checks that code parses as a BCP 47 / ISO 639-1
// language tag.
func ValidateLanguage(code string) error {
	if code == "" {
		return nil
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("%q: %w", code, err)
	}
	return nil
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}
