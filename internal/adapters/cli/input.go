package cli

import (
	"bufio"
	"os"
	"strings"
)

// ParseInputFile reads a file containing video URLs, one per line.
// Blank lines and lines starting with # are ignored.
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

// CollectInputs combines CLI arguments and file input, deduplicating.
// Args are processed first, then file entries.
// Returns unique URLs in order of first appearance.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := make(map[string]bool)
	var urls []string

	// Process CLI args first
	for _, arg := range args {
		url := strings.TrimSpace(arg)
		if url == "" {
			continue
		}
		if !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	// Process file if provided
	if filePath != "" {
		fileURLs, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, url := range fileURLs {
			if !seen[url] {
				seen[url] = true
				urls = append(urls, url)
			}
		}
	}

	return urls, nil
}
