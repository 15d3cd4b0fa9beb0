package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ofarias/transcreva/internal/domain"
	"github.com/ofarias/transcreva/internal/history"
)

var historyLimitFlag int

// NewHistoryCmd creates the history subcommand
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transcription runs",
		RunE:  runHistory,
	}

	cmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Max runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}
	if app.History == nil {
		return fmt.Errorf("run history is unavailable")
	}

	runs, err := app.History.Recent(historyLimitFlag)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	fmt.Println()
	for _, run := range runs {
		fmt.Printf("%s  %-7s %-10s %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Status,
			domain.FormatElapsed(run.Duration),
			run.URL,
		)
		if run.Status == history.StatusFailed && run.Error != "" {
			fmt.Printf("    error: %s\n", run.Error)
		} else if run.OutputPath != "" {
			fmt.Printf("    output: %s\n", run.OutputPath)
		}
	}
	fmt.Println()

	return nil
}
