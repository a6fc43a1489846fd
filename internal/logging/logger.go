package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Config holds logger configuration
type Config struct {
	Level      string // logrus level name
	JSONFormat bool
	OutputFile string // optional, written in addition to the console writer
	MaxSize    int64  // bytes before rotation (default: 10MB)
	MaxBackups int    // rotated files to keep; 0 discards the old file on rotation
}

// Logger wraps a logrus logger that may also write to a rotated file
type Logger struct {
	*logrus.Logger

	config Config
	file   *os.File
	mu     sync.Mutex
}

// New creates a logger writing to console (normally stderr) and, if configured, to a log file
func New(config Config, console io.Writer) (*Logger, error) {
	if config.MaxSize == 0 {
		config.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if config.MaxBackups < 0 {
		return nil, fmt.Errorf("invalid max backups %d", config.MaxBackups)
	}
	if config.Level == "" {
		config.Level = "warn"
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	l := &Logger{
		Logger: logrus.New(),
		config: config,
	}
	l.SetLevel(level)

	writers := []io.Writer{console}
	if config.OutputFile != "" {
		dir := filepath.Dir(config.OutputFile)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}

		if err := l.rotateIfNeeded(); err != nil {
			return nil, fmt.Errorf("failed to rotate logs: %w", err)
		}

		file, err := os.OpenFile(config.OutputFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", config.OutputFile, err)
		}
		l.file = file
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	if config.JSONFormat {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		// Colours only when the console is a terminal and nothing else shares the stream.
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   l.file == nil && isTerminal(console),
			DisableColors: l.file != nil || !isTerminal(console),
		})
	}

	return l, nil
}

// Run returns an entry tagged with a fresh run id
func (l *Logger) Run() *logrus.Entry {
	return l.WithField("run_id", uuid.NewString())
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// rotateIfNeeded moves a log file larger than MaxSize to .1, shifting older backups up
func (l *Logger) rotateIfNeeded() error {
	if l.config.OutputFile == "" {
		return nil
	}

	info, err := os.Stat(l.config.OutputFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	if info.Size() < l.config.MaxSize {
		return nil
	}

	if l.config.MaxBackups == 0 {
		if err := os.Remove(l.config.OutputFile); err != nil {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
		return nil
	}

	// The oldest backup falls off the end.
	_ = os.Remove(fmt.Sprintf("%s.%d", l.config.OutputFile, l.config.MaxBackups))
	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		oldPath := fmt.Sprintf("%s.%d", l.config.OutputFile, i)
		newPath := fmt.Sprintf("%s.%d", l.config.OutputFile, i+1)
		if _, err := os.Stat(oldPath); err == nil {
			os.Rename(oldPath, newPath)
		}
	}

	if err := os.Rename(l.config.OutputFile, l.config.OutputFile+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}

// FilePath returns the log file path, empty when logging to the console only
func (l *Logger) FilePath() string {
	return l.config.OutputFile
}

// Close closes the log file if one is open
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}
