package tui

import (
	"fmt"
	"strings"
	"sync"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	switch {
	case current >= total:
		bar.WriteString(strings.Repeat("=", width))
	case current == 0:
		bar.WriteString(strings.Repeat(" ", width))
	default:
		ratio := float64(current) / float64(total)
		arrowPos := int(ratio*float64(width) + 0.5)
		if arrowPos < 1 {
			arrowPos = 1
		}
		if arrowPos > width {
			arrowPos = width
		}

		equals := arrowPos - 1
		if ratio >= 0.5 {
			equals = arrowPos
		}
		if equals > width-1 {
			equals = width - 1
		}

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", width-equals-1))
	}

	bar.WriteString("]")
	return bar.String()
}

type failedItem struct {
	URL    string
	ErrMsg string
}

// BatchProgress renders the state of a sequential batch: a single
// live status line for the item in flight, and one permanent line
// per finished item.
type BatchProgress struct {
	total     int
	completed int
	failures  []failedItem
	quiet     bool
	mu        sync.Mutex
}

// NewBatchProgress creates a new batch progress display
func NewBatchProgress(total int, quiet bool) *BatchProgress {
	if total < 0 {
		total = 0
	}
	return &BatchProgress{
		total: total,
		quiet: quiet,
	}
}

// Update rewrites the live status line for the item in flight.
func (bp *BatchProgress) Update(index int, url, message string) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.quiet {
		return
	}

	line := fmt.Sprintf("%s %d/%d %s",
		renderProgressBar(bp.completed, bp.total, 20), index+1, bp.total, message)
	fmt.Printf("\r\033[K%s", Truncate(line, 100))
}

// AddResult replaces the live line with a permanent ✓/✗ line.
func (bp *BatchProgress) AddResult(url string, success bool, errMsg string) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.completed++
	if !success {
		bp.failures = append(bp.failures, failedItem{URL: url, ErrMsg: errMsg})
	}

	if bp.quiet {
		return
	}

	fmt.Print("\r\033[K")
	if success {
		fmt.Printf("✓ %s\n", url)
	} else {
		fmt.Printf("✗ %s: %s\n", url, errMsg)
	}
}

// Complete prints the final summary
func (bp *BatchProgress) Complete(successes int) {
	bp.mu.Lock()
	failures := make([]failedItem, len(bp.failures))
	copy(failures, bp.failures)
	total := bp.total
	bp.mu.Unlock()

	if bp.quiet {
		return
	}

	fmt.Println()
	fmt.Printf("Batch complete: %d/%d succeeded\n", successes, total)

	if len(failures) > 0 {
		fmt.Println("\nFailures:")
		for _, f := range failures {
			fmt.Printf("  ✗ %s: %s\n", f.URL, f.ErrMsg)
		}
	}
}

// SuccessCount returns the number of successful results so far.
func (bp *BatchProgress) SuccessCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.completed - len(bp.failures)
}

// FailureCount returns the number of failed results so far.
func (bp *BatchProgress) FailureCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.failures)
}
