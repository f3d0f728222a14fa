package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

var (
	base    = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
	once    sync.Once
	mu      sync.RWMutex
)

// InitLogger wires the process logger. In dev mode records are mirrored as
// text to console; when logPath is set they are also written as JSON to a
// timestamped file in that directory. Only the first call has any effect.
func InitLogger(dev bool, logPath string, console io.Writer) error {
	var err error
	once.Do(func() {
		var file io.Writer
		if logPath != "" {
			timestamp := time.Now().Format("20060102_150405")
			fileName := fmt.Sprintf("naeyla_log_%s.log", timestamp)

			f, openErr := os.OpenFile(filepath.Join(logPath, fileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if openErr != nil {
				err = fmt.Errorf("open log file: %w", openErr)
				return
			}
			logFile = f
			file = f
		}

		if !dev {
			console = nil
		}

		mu.Lock()
		base = slog.New(NewHandler(console, file, levelFor(dev)))
		mu.Unlock()
	})
	return err
}

// NewHandler fans records out to a text handler on console and a JSON
// handler on file. Either writer may be nil.
func NewHandler(console, file io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var handlers []slog.Handler
	if console != nil {
		handlers = append(handlers, slog.NewTextHandler(console, opts))
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}
	if len(handlers) == 0 {
		return slog.NewTextHandler(io.Discard, opts)
	}
	return slogmulti.Fanout(handlers...)
}

// NewLogger returns the process logger tagged with the calling component.
func NewLogger(tag string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base.With("tag", tag)
}

func Close() error {
	if logFile == nil {
		return nil
	}
	return logFile.Close()
}

func levelFor(dev bool) slog.Level {
	if dev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
