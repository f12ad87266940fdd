package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const maxHistoryLines = 500

// inputHistory recalls previously typed chat lines with Up/Down. When path
// is set, lines persist across runs.
type inputHistory struct {
	path  string
	lines []string
	idx   int
}

func newInputHistory(path string) *inputHistory {
	h := &inputHistory{path: path}
	if path != "" {
		h.lines = loadHistoryFromPath(path)
	}
	h.idx = len(h.lines)
	return h
}

// add records line and resets the cursor past the newest entry.
func (h *inputHistory) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	h.lines = append(h.lines, line)
	h.idx = len(h.lines)
	if h.path != "" {
		appendHistoryToPath(h.path, line)
	}
}

// prev steps back and returns the entry, or false at the oldest one.
func (h *inputHistory) prev() (string, bool) {
	if h.idx == 0 {
		return "", false
	}
	h.idx--
	return h.lines[h.idx], true
}

// next steps forward. Past the newest entry it returns "" so the input clears.
func (h *inputHistory) next() string {
	if h.idx < len(h.lines)-1 {
		h.idx++
		return h.lines[h.idx]
	}
	h.idx = len(h.lines)
	return ""
}

// loadHistoryFromPath reads history lines from path, keeping the newest
// maxHistoryLines. A missing or unreadable file yields nil.
func loadHistoryFromPath(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}
	return lines
}

// appendHistoryToPath appends a single line to the history file. History is
// best-effort; errors are dropped.
func appendHistoryToPath(path, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(line + "\n")
}
