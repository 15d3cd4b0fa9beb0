package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/singleflight"

	"github.com/ofarias/transcreva/pkg/log"
)

var (
	watchFileFlag     string
	watchScheduleFlag string
)

// NewWatchCmd creates the watch subcommand
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a URL file on a schedule",
		Long: `Periodically re-reads a URL file and transcribes its entries.
Already cached URLs complete instantly, so new lines in the file are
the only real work each tick.

The schedule uses standard cron syntax, e.g. "0 * * * *" for hourly.`,
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchFileFlag, "file", "", "File with URLs (one per line)")
	cmd.Flags().StringVar(&watchScheduleFlag, "schedule", "@hourly", "Cron schedule")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Fail early on unreadable input instead of at the first tick.
	if _, err := ParseInputFile(watchFileFlag); err != nil {
		return fmt.Errorf("failed to read watch file: %w", err)
	}

	// A tick that fires while the previous batch is still running
	// joins it instead of starting a second one.
	var group singleflight.Group
	runOnce := func() {
		group.Do("batch", func() (interface{}, error) {
			urls, err := ParseInputFile(watchFileFlag)
			if err != nil {
				log.Error("failed to read watch file: %v", err)
				return nil, err
			}
			if len(urls) == 0 {
				log.Info("watch file is empty, nothing to do")
				return nil, nil
			}
			if err := runBatch(urls); err != nil {
				log.Error("scheduled batch failed: %v", err)
			}
			return nil, nil
		})
	}

	c := cron.New()
	if _, err := c.AddFunc(watchScheduleFlag, runOnce); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", watchScheduleFlag, err)
	}

	log.Info("watching %s on schedule %q", watchFileFlag, watchScheduleFlag)
	runOnce()
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nStopping...")
	<-c.Stop().Done()
	return nil
}
