package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents log level
type Level string

const (
	LevelDebug   Level = "DEBUG"
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// rank orders levels for threshold filtering
func (l Level) rank() int {
	switch l {
	case LevelDebug:
		return 0
	case LevelInfo:
		return 1
	case LevelWarning:
		return 2
	case LevelError:
		return 3
	}
	return 1
}

// Logger handles leveled logging to a file.
// Standard output is the pass-persist channel, so a logger never writes there.
type Logger struct {
	filePath string
	logFile  *os.File
	out      io.Writer
	level    Level
	mu       sync.Mutex
}

// New creates a new logger instance. When the file cannot be opened the
// logger falls back to stderr.
func New(filePath string) *Logger {
	logger := &Logger{filePath: filePath, out: os.Stderr, level: LevelInfo}

	if filePath != "" {
		logFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			logger.logFile = logFile
			logger.out = logFile
		}
	}

	return logger
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{out: w, level: LevelInfo}
}

// SetLevel changes the minimum level that gets written
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// GetLevel returns the current threshold
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Path returns the log file path, or "" when logging to a writer
func (l *Logger) Path() string {
	if l.logFile == nil {
		return ""
	}
	return l.filePath
}

func (l *Logger) write(level Level, message string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out == nil || level.rank() < l.level.rank() {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Fprintf(l.out, "[%s] %s: %s\n", timestamp, level, formattedMsg)
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile != nil {
		l.logFile.Close()
		l.logFile = nil
		l.out = nil
	}
}

// Info logs an informational message
func (l *Logger) Info(message string, args ...interface{}) {
	l.write(LevelInfo, message, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(message string, args ...interface{}) {
	l.write(LevelWarning, message, args...)
}

// Error logs an error message
func (l *Logger) Error(message string, args ...interface{}) {
	l.write(LevelError, message, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, args ...interface{}) {
	l.write(LevelDebug, message, args...)
}

// Global logger instance for convenience
var (
	defaultLogger   = NewWithWriter(os.Stderr)
	defaultLoggerMu sync.RWMutex
)

// SetDefault replaces the package-level logger
func SetDefault(l *Logger) {
	defaultLoggerMu.Lock()
	defaultLogger = l
	defaultLoggerMu.Unlock()
}

// Default returns the package-level logger
func Default() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Info logs an informational message using the default logger
func Info(message string, args ...interface{}) {
	Default().Info(message, args...)
}

// Warning logs a warning message using the default logger
func Warning(message string, args ...interface{}) {
	Default().Warning(message, args...)
}

// Error logs an error message using the default logger
func Error(message string, args ...interface{}) {
	Default().Error(message, args...)
}

// Debug logs a debug message using the default logger
func Debug(message string, args ...interface{}) {
	Default().Debug(message, args...)
}
