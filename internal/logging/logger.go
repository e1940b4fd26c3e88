// Package logging provides categorized file-based logging for pitsweeper.
// Each category writes to its own file under <dir>/logs/. Logging is a
// silent no-op until Configure enables debug mode, so the solver's hot
// paths pay nothing in normal runs.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot    Category = "boot"    // startup and configuration
	CategoryKernel  Category = "kernel"  // knowledge base tell/ask/simplify
	CategoryPercept Category = "percept" // sensor readings and encoding
	CategoryAgent   Category = "agent"   // controller decisions and scoring
	CategoryWorld   Category = "world"   // maze simulation
	CategorySession Category = "session" // episode lifecycle
	CategoryStore   Category = "store"   // episode persistence
)

// Level thresholds.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options controls the logging subsystem.
type Options struct {
	Dir        string          // base directory; logs land in Dir/logs
	Debug      bool            // master switch; false means no-op loggers
	Level      string          // debug, info, warn, error (default info)
	Categories map[string]bool // per-category enable; nil means all on
}

// Logger wraps a standard logger bound to one category file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	mu       sync.RWMutex
	loggers  = make(map[Category]*Logger)
	opts     Options
	logsDir  string
	logLevel = LevelInfo
)

// Configure sets up the logging directory from options. Call once at
// startup; reconfiguring closes existing category files.
func Configure(o Options) error {
	mu.Lock()
	defer mu.Unlock()

	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)

	opts = o
	switch o.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}

	if !o.Debug {
		logsDir = ""
		return nil
	}
	if o.Dir == "" {
		return fmt.Errorf("logging dir required in debug mode")
	}
	logsDir = filepath.Join(o.Dir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// IsDebugMode returns whether debug logging is enabled.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.Debug
}

func categoryEnabled(category Category) bool {
	if !opts.Debug || logsDir == "" {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, ok := opts.Categories[string(category)]
	if !ok {
		return true
	}
	return enabled
}

// Get returns (or creates) the logger for a category. Disabled categories
// get a no-op logger.
func Get(category Category) *Logger {
	mu.RLock()
	if !categoryEnabled(category) {
		mu.RUnlock()
		return &Logger{category: category}
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", logPath, err)
		return &Logger{category: category}
	}
	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience helpers for the hot categories.

// Kernel logs to the kernel category at info level.
func Kernel(format string, args ...interface{}) {
	Get(CategoryKernel).Info(format, args...)
}

// KernelDebug logs to the kernel category at debug level.
func KernelDebug(format string, args ...interface{}) {
	Get(CategoryKernel).Debug(format, args...)
}

// Agent logs to the agent category at info level.
func Agent(format string, args ...interface{}) {
	Get(CategoryAgent).Info(format, args...)
}

// AgentDebug logs to the agent category at debug level.
func AgentDebug(format string, args ...interface{}) {
	Get(CategoryAgent).Debug(format, args...)
}

// Percept logs to the percept category at info level.
func Percept(format string, args ...interface{}) {
	Get(CategoryPercept).Info(format, args...)
}

// PerceptDebug logs to the percept category at debug level.
func PerceptDebug(format string, args ...interface{}) {
	Get(CategoryPercept).Debug(format, args...)
}

// World logs to the world category at info level.
func World(format string, args ...interface{}) {
	Get(CategoryWorld).Info(format, args...)
}

// Session logs to the session category at info level.
func Session(format string, args ...interface{}) {
	Get(CategorySession).Info(format, args...)
}

// Timer helps measure operation duration.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}
