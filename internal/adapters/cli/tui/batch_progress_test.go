package tui

import "testing"

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		width          int
		want           string
	}{
		{0, 10, 10, "[          ]"},
		{5, 10, 10, "[=====>    ]"},
		{10, 10, 10, "[==========]"},
		{3, 10, 10, "[==>       ]"},
		{0, 0, 10, "[          ]"},
	}

	for _, tt := range tests {
		got := renderProgressBar(tt.current, tt.total, tt.width)
		if got != tt.want {
			t.Errorf("renderProgressBar(%d, %d, %d) = %q, want %q",
				tt.current, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestBatchProgressCounts(t *testing.T) {
	bp := NewBatchProgress(3, true)

	bp.AddResult("https://example.com/a", true, "")
	bp.AddResult("https://example.com/b", false, "download failed")
	bp.AddResult("https://example.com/c", true, "")

	if got := bp.SuccessCount(); got != 2 {
		t.Errorf("SuccessCount() = %d, want 2", got)
	}
	if got := bp.FailureCount(); got != 1 {
		t.Errorf("FailureCount() = %d, want 1", got)
	}
}

func TestBatchProgressNegativeTotal(t *testing.T) {
	bp := NewBatchProgress(-5, true)
	if bp.total != 0 {
		t.Errorf("total = %d, want 0", bp.total)
	}
}
