package adapter

import (
	"os"
	"strings"
	"sync"
)

// LineCache caches file contents for repeated line lookups, so a
// dissect listing does not reread the same file for every
// observation.
type LineCache struct {
	mu    sync.Mutex
	files map[string][]string
}

// NewLineCache returns an empty cache.
func NewLineCache() *LineCache {
	return &LineCache{files: make(map[string][]string)}
}

// Line returns the 1-indexed line of path without its end-of-line
// characters, or "" when the file or line cannot be read. Failures
// are cached too: a missing file is only stat'ed once.
func (c *LineCache) Line(path string, line int) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines, ok := c.files[path]
	if !ok {
		data, err := os.ReadFile(path)
		if err != nil {
			data = nil
		}

		lines = strings.Split(string(data), "\n")
		c.files[path] = lines
	}

	if line < 1 || line > len(lines) {
		return ""
	}

	return strings.TrimRight(lines[line-1], "\r")
}
