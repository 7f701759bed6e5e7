// Package journal keeps a bounded in-memory feed of simulation events.
// Events are written through a structured logger and retained as
// formatted lines for the UI's event panel; once the feed is full the
// oldest line is dropped.
package journal

import (
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is the number of event lines retained by default.
const DefaultCapacity = 10

// Journal is a fixed-capacity event feed. It doubles as the io.Writer
// behind its structured logger, so everything logged lands in the feed.
type Journal struct {
	mu    sync.Mutex
	lines []string
	cap   int

	logger *log.Logger
}

// New creates a journal retaining the last capacity lines. A
// non-positive capacity falls back to DefaultCapacity.
func New(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	j := &Journal{cap: capacity}
	j.logger = log.NewWithOptions(j, log.Options{
		ReportTimestamp: false,
	})
	return j
}

// Logger returns the structured logger feeding this journal.
func (j *Journal) Logger() *log.Logger {
	return j.logger
}

// Write implements io.Writer for the logger. Each newline-terminated
// chunk becomes one feed line.
func (j *Journal) Write(p []byte) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		j.lines = append(j.lines, line)
		if len(j.lines) > j.cap {
			j.lines = j.lines[1:]
		}
	}
	return len(p), nil
}

// Tail returns up to n of the most recent lines, oldest first.
func (j *Journal) Tail(n int) []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > len(j.lines) {
		n = len(j.lines)
	}
	out := make([]string, n)
	copy(out, j.lines[len(j.lines)-n:])
	return out
}
