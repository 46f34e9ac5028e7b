// Package history records evaluated expressions to a file off the
// evaluation path.
package history

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
)

// DefaultQueue is the number of entries that can wait to be written when
// Options.Queue is not set.
const DefaultQueue = 64

// Options configures a Logger.
type Options struct {
	// Queue is the mailbox size. Entries notified while it is full are dropped.
	Queue int
	// Truncate empties the file on open. Otherwise entries are appended.
	Truncate bool
	// Log receives diagnostics. Nil uses slog.Default().
	Log *slog.Logger
}

type entry struct {
	expr   string
	result float64
}

// Logger writes "expr=result" lines to a file from a single worker goroutine.
// Notify never blocks and never fails; write errors are logged. The zero
// Logger and a nil *Logger are disabled and discard everything.
type Logger struct {
	path    string
	mailbox chan entry
	w       io.WriteCloser
	log     *slog.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
	dropped atomic.Int64
}

// Open starts a history logger writing to path. An empty path gives a
// disabled logger.
func Open(path string, opts Options) (*Logger, error) {
	if path == "" {
		return &Logger{}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	flag := os.O_CREATE | os.O_WRONLY
	if opts.Truncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return start(path, f, opts), nil
}

// New starts a history logger writing to w. Close closes w.
func New(w io.WriteCloser, opts Options) *Logger {
	return start("", w, opts)
}

func start(path string, w io.WriteCloser, opts Options) *Logger {
	if opts.Queue < 1 {
		opts.Queue = DefaultQueue
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	l := &Logger{
		path:    path,
		mailbox: make(chan entry, opts.Queue),
		w:       w,
		log:     opts.Log.With("component", "history"),
		done:    make(chan struct{}),
	}
	go l.run()
	return l
}

// Dropped returns the number of entries dropped because the mailbox was full.
func (l *Logger) Dropped() int64 {
	if l == nil {
		return 0
	}
	return l.dropped.Load()
}

// Path returns the history file path, if the logger writes to a file.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Enabled returns whether the logger records anything.
func (l *Logger) Enabled() bool {
	return l != nil && l.mailbox != nil
}

// Notify queues a line for expr and its result. It returns immediately; if
// the mailbox is full or the logger is closed, the entry is dropped.
func (l *Logger) Notify(expr string, result float64) {
	if !l.Enabled() {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.stopped {
		l.log.Warn("history entry after close dropped", "expr", expr)
		return
	}
	select {
	case l.mailbox <- entry{expr: expr, result: result}:
	default:
		l.dropped.Add(1)
		l.log.Warn("history mailbox full, entry dropped", "expr", expr)
	}
}

func (l *Logger) run() {
	defer close(l.done)
	bw := bufio.NewWriter(l.w)
	for e := range l.mailbox {
		line := Line(e.expr, e.result)
		if _, err := bw.WriteString(line + "\n"); err != nil {
			l.log.Error("failed to write history", "err", err)
			continue
		}
		// Flush whenever the mailbox is drained so the file stays current.
		if len(l.mailbox) == 0 {
			if err := bw.Flush(); err != nil {
				l.log.Error("failed to flush history", "err", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		l.log.Error("failed to flush history", "err", err)
	}
}

// Close stops accepting entries, waits for queued entries to be written, and
// closes the file. If ctx ends first, Close returns its error and the worker
// finishes in the background.
func (l *Logger) Close(ctx context.Context) error {
	if !l.Enabled() {
		return nil
	}
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	close(l.mailbox)
	l.mu.Unlock()

	select {
	case <-l.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if n := l.dropped.Load(); n > 0 {
		l.log.Warn("history entries dropped", "count", n)
	}
	if err := l.w.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	return nil
}

// Line formats a history line, e.g. "3+4*2=11".
func Line(expr string, result float64) string {
	return expr + "=" + strconv.FormatFloat(result, 'g', -1, 64)
}
