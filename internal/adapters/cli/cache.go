package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ofarias/transcreva/internal/adapters/cli/tui"
)

// NewCacheCmd creates the cache subcommand
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached transcripts",
		RunE:  runCacheStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached transcripts",
		RunE:  runCacheClear,
	}

	cmd.AddCommand(clearCmd)

	return cmd
}

func runCacheStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	stats, err := app.CacheSvc.Stats()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Cache Statistics:")
	fmt.Printf("  Entries: %d\n", stats.EntryCount)
	fmt.Printf("  Size:    %s\n", tui.FormatSize(stats.TotalSize))
	fmt.Println()

	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	existed, err := app.CacheSvc.Clear()
	if err != nil {
		return err
	}

	if existed {
		fmt.Println("Cache cleared")
	} else {
		fmt.Println("Cache is already empty")
	}

	return nil
}
