package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ofarias/transcreva/internal/adapters/cli/tui"
	"github.com/ofarias/transcreva/internal/instance"
)

var (
	// Global flags
	fileFlag       string
	modelFlag      string
	languageFlag   string
	formatFlag     string
	noCacheFlag    bool
	keepAudioFlag  bool
	outputDirFlag  string
	translateFlag  bool
	targetLangFlag string
	quietFlag      bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transcreva [urls...]",
		Short: "Transcribe audio from remote videos",
		Long: `transcreva downloads the audio track of remote videos, transcribes
it locally with whisper.cpp and writes the text to disk.

Provide one or more video URLs (and/or a file with --file) to run a
batch, or run without arguments for an interactive menu.`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}

	rootCmd.PersistentFlags().StringVarP(&fileFlag, "file", "f", "", "File with URLs (one per line)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Whisper model: tiny, base, small, medium, large")
	rootCmd.PersistentFlags().StringVarP(&languageFlag, "language", "l", "", "Spoken language code (empty for auto-detect)")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Output format: simple, segments, timestamps")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "Skip the transcript cache")
	rootCmd.PersistentFlags().BoolVar(&keepAudioFlag, "keep-audio", false, "Keep the downloaded audio next to the output")
	rootCmd.PersistentFlags().StringVarP(&outputDirFlag, "output", "o", "", "Output directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&translateFlag, "translate", false, "Also translate each transcript")
	rootCmd.PersistentFlags().StringVar(&targetLangFlag, "target-language", "", "Translation target language code")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	urls, err := CollectInputs(args, fileFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}

	if len(urls) == 0 {
		return runInteractiveMenu()
	}

	return runBatch(urls)
}

func runInteractiveMenu() error {
	options := []tui.MenuOption{
		{Label: "Transcribe videos", Value: "transcribe"},
		{Label: "Cache status", Value: "cache"},
		{Label: "Clear cache", Value: "clear"},
		{Label: "Recent runs", Value: "history"},
	}

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	switch selected {
	case "transcribe":
		urls, err := promptURLs()
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			fmt.Println("No URLs given")
			return nil
		}
		return runBatch(urls)
	case "cache":
		return runCacheStatus(nil, nil)
	case "clear":
		return runCacheClear(nil, nil)
	case "history":
		return runHistory(nil, nil)
	case "":
		fmt.Println("Cancelled")
	}

	return nil
}

// promptURLs reads URLs from stdin, one per line, until a blank line.
func promptURLs() ([]string, error) {
	fmt.Println("Enter video URLs, one per line (blank line to finish):")

	var urls []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// Execute runs the CLI. The single-instance guard is held for the
// whole process lifetime.
func Execute() {
	guard, err := instance.Acquire()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer guard.Release()

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
