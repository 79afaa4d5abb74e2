package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const recentLimit = 3

// Bar is a running counter of scanned directories. The number of directories
// is not known up front, so there is no percentage.
type Bar struct {
	current    int64
	writer     io.Writer
	mu         sync.Mutex
	recent     []string
	enabled    bool
	lastUpdate time.Time
	interval   time.Duration
}

func New(w io.Writer, enabled bool) *Bar {
	return &Bar{
		writer:   w,
		recent:   make([]string, 0, recentLimit),
		enabled:  enabled,
		interval: 100 * time.Millisecond,
	}
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

func (b *Bar) SetDirectory(dir string) {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.recent) == recentLimit {
		b.recent = b.recent[1:]
	}
	b.recent = append(b.recent, filepath.Base(dir))
}

func (b *Bar) Increment() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++

	// Update at most every interval to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > b.interval {
		b.lastUpdate = now
		b.render()
	}
}

// Count returns the number of directories seen so far.
func (b *Bar) Count() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// render must be called with mu already locked
func (b *Bar) render() {
	var dirDisplay string
	if len(b.recent) > 0 {
		dirDisplay = " | " + strings.Join(b.recent, ", ")
	}

	fmt.Fprintf(b.writer, "\r\033[KScanned %d directories%s", b.current, dirDisplay)
}

func (b *Bar) Finish() {
	if !b.enabled {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.recent = b.recent[:0]
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
