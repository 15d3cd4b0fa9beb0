package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseInputFile(t *testing.T) {
	t.Run("parses file with comments and blank lines", func(t *testing.T) {
		content := `# This is a comment
https://www.youtube.com/watch?v=abc123

# Another comment
https://vimeo.com/123456

https://example.com/video.mp4
`
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "input.txt")
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		urls, err := ParseInputFile(filePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			"https://www.youtube.com/watch?v=abc123",
			"https://vimeo.com/123456",
			"https://example.com/video.mp4",
		}
		if len(urls) != len(expected) {
			t.Fatalf("expected %d URLs, got %d: %v", len(expected), len(urls), urls)
		}

		for i, url := range urls {
			if url != expected[i] {
				t.Errorf("expected URL[%d] = %q, got %q", i, expected[i], url)
			}
		}
	})

	t.Run("returns error for nonexistent file", func(t *testing.T) {
		_, err := ParseInputFile("/nonexistent/path/file.txt")
		if err == nil {
			t.Error("expected error for nonexistent file, got nil")
		}
	})
}

func TestCollectInputs(t *testing.T) {
	t.Run("combines args and file with deduplication", func(t *testing.T) {
		content := `https://example.com/a
https://example.com/b
https://example.com/c
`
		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "input.txt")
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		// Args include /a which is also in the file (deduplicated)
		args := []string{"https://example.com/a", "https://example.com/new"}

		urls, err := CollectInputs(args, filePath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{
			"https://example.com/a",
			"https://example.com/new",
			"https://example.com/b",
			"https://example.com/c",
		}
		if len(urls) != len(expected) {
			t.Fatalf("expected %d URLs, got %d: %v", len(expected), len(urls), urls)
		}

		for i, url := range urls {
			if url != expected[i] {
				t.Errorf("expected URL[%d] = %q, got %q", i, expected[i], url)
			}
		}
	})

	t.Run("works with args only when filePath is empty", func(t *testing.T) {
		args := []string{"https://example.com/a", "  https://example.com/b  "}

		urls, err := CollectInputs(args, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"https://example.com/a", "https://example.com/b"}
		if len(urls) != len(expected) {
			t.Fatalf("expected %d URLs, got %d: %v", len(expected), len(urls), urls)
		}

		for i, url := range urls {
			if url != expected[i] {
				t.Errorf("expected URL[%d] = %q, got %q", i, expected[i], url)
			}
		}
	})
}
