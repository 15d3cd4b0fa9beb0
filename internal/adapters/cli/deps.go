package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ofarias/transcreva/internal/adapters/ytdlp"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage external dependencies (yt-dlp, whisper models)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE:  runDepsInstall,
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE:  runDepsUpdate,
	}

	modelCmd := &cobra.Command{
		Use:   "model [name]",
		Short: "Download a whisper model",
		Args:  cobra.ExactArgs(1),
		RunE:  runDepsModel,
	}

	cmd.AddCommand(statusCmd, installCmd, updateCmd, modelCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Dependency Status:")
	fmt.Println()

	exec := ytdlp.NewExecResolver()
	if exec.IsAvailable() {
		fmt.Printf("  yt-dlp:   installed (%s)\n", exec.GetBinaryPath())
	} else {
		fmt.Println("  yt-dlp:   not found (library fallback will be used)")
	}
	fmt.Printf("  resolver: %s strategy\n", app.Resolver.Strategy())

	models := app.Engine.AvailableModels()
	downloaded := 0
	for _, m := range models {
		if m.Downloaded {
			downloaded++
		}
	}
	fmt.Printf("  whisper:  %d/%d models downloaded\n", downloaded, len(models))
	for _, m := range models {
		mark := " "
		if m.Downloaded {
			mark = "x"
		}
		fmt.Printf("    [%s] %-8s %s\n", mark, m.Name, m.Description)
	}
	fmt.Println()

	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	exec := ytdlp.NewExecResolver()
	if exec.IsAvailable() {
		fmt.Println("yt-dlp is already installed")
		return nil
	}

	fmt.Println("Installing yt-dlp...")

	ctx := context.Background()
	err := exec.Install(ctx, func(downloaded, total int64) {
		if total > 0 {
			pct := float64(downloaded) / float64(total) * 100
			fmt.Printf("\rProgress: %.1f%%", pct)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println("\nyt-dlp installed")
	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	exec := ytdlp.NewExecResolver()
	if !exec.IsAvailable() {
		return fmt.Errorf("yt-dlp is not installed. Run 'transcreva deps install' first")
	}

	fmt.Println("Updating yt-dlp...")

	if err := exec.Update(context.Background()); err != nil {
		return err
	}

	fmt.Println("yt-dlp updated")
	return nil
}

func runDepsModel(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	model := args[0]
	if app.Engine.IsModelDownloaded(model) {
		fmt.Printf("Model %q is already downloaded\n", model)
		return nil
	}

	fmt.Printf("Downloading model %q...\n", model)

	ctx := context.Background()
	err = app.Engine.DownloadModel(ctx, model, func(downloaded, total int64) {
		if total > 0 {
			pct := float64(downloaded) / float64(total) * 100
			fmt.Printf("\rProgress: %.1f%%", pct)
		}
	})
	if err != nil {
		return err
	}

	fmt.Println("\nModel downloaded")
	return nil
}
