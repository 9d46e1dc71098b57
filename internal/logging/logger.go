// Package logging provides config-driven categorized logging for ScholarSync.
// Logs are JSON lines written to <dir>/<date>_scholarsync.log, one zap logger per
// category. Logging is controlled by debug_mode in the config; when it is false and
// no stderr tee is requested, every logger is a no-op so the terminal UI is never
// written to.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot  Category = "boot"  // Startup, config, wiring
	CategoryAPI   Category = "api"   // Completion gateway calls
	CategoryUI    Category = "ui"    // Shell navigation and screen events
	CategoryGraph Category = "graph" // Force simulation lifecycle
	CategoryStore Category = "store" // Data provider
	CategoryCLI   Category = "cli"   // Headless subcommands
)

// Options configures Initialize. It mirrors config.LoggingConfig to avoid an import cycle.
type Options struct {
	DebugMode  bool
	Level      string
	Dir        string
	Categories map[string]bool
	// Stderr tees console-encoded output to stderr regardless of DebugMode.
	// Only set this for non-interactive commands.
	Stderr bool
}

var (
	mu      sync.RWMutex
	opts    Options
	base    = zap.NewNop()
	active  bool
	file    *os.File
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds the shared zap logger. It may be called again to reconfigure.
func Initialize(o Options) error {
	level := zapcore.InfoLevel
	if o.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(o.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", o.Level, err)
		}
		level = parsed
	}

	var cores []zapcore.Core
	var logFile *os.File

	if o.DebugMode {
		dir := o.Dir
		if dir == "" {
			dir = filepath.Join(".scholarsync", "logs")
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		name := fmt.Sprintf("%s_scholarsync.log", time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		enc := zap.NewProductionEncoderConfig()
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), level))
	}

	if o.Stderr {
		enc := zap.NewDevelopmentEncoderConfig()
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), zapcore.DebugLevel))
	}

	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	opts = o
	file = logFile
	loggers = make(map[Category]*zap.SugaredLogger)
	if len(cores) == 0 {
		base = zap.NewNop()
		active = false
		return nil
	}
	base = zap.New(zapcore.NewTee(cores...))
	active = true
	return nil
}

// ReplaceCore routes every category to core, enabling all categories.
// It returns a func restoring the previous state. Intended for tests.
func ReplaceCore(core zapcore.Core) (restore func()) {
	mu.Lock()
	prevOpts, prevBase, prevActive, prevFile := opts, base, active, file
	opts = Options{DebugMode: true}
	base = zap.New(core)
	active = true
	file = nil
	loggers = make(map[Category]*zap.SugaredLogger)
	mu.Unlock()

	return func() {
		mu.Lock()
		defer mu.Unlock()
		opts, base, active, file = prevOpts, prevBase, prevActive, prevFile
		loggers = make(map[Category]*zap.SugaredLogger)
	}
}

// IsDebugMode returns whether file logging is enabled
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !active {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if logging is off or the category is disabled.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
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

	var l *zap.SugaredLogger
	if categoryEnabledLocked(category) {
		l = base.Named(string(category)).Sugar()
	} else {
		l = zap.NewNop().Sugar()
	}
	loggers[category] = l
	return l
}

// CloseAll flushes and closes the log file, leaving every logger a no-op.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	base = zap.NewNop()
	active = false
	loggers = make(map[Category]*zap.SugaredLogger)
}

func closeLocked() {
	_ = base.Sync()
	if file != nil {
		_ = file.Close()
		file = nil
	}
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

// BootWarn logs a warning to the boot category
func BootWarn(format string, args ...interface{}) {
	Get(CategoryBoot).Warnf(format, args...)
}

// API logs to the api category
func API(format string, args ...interface{}) {
	Get(CategoryAPI).Infof(format, args...)
}

// APIDebug logs debug to the api category
func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debugf(format, args...)
}

// APIError logs an error to the api category
func APIError(format string, args ...interface{}) {
	Get(CategoryAPI).Errorf(format, args...)
}

// UI logs to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Infof(format, args...)
}

// UIDebug logs debug to the ui category
func UIDebug(format string, args ...interface{}) {
	Get(CategoryUI).Debugf(format, args...)
}

// Graph logs to the graph category
func Graph(format string, args ...interface{}) {
	Get(CategoryGraph).Infof(format, args...)
}

// GraphDebug logs debug to the graph category
func GraphDebug(format string, args ...interface{}) {
	Get(CategoryGraph).Debugf(format, args...)
}

// StoreDebug logs debug to the store category
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debugf(format, args...)
}

// CLI logs to the cli category
func CLI(format string, args ...interface{}) {
	Get(CategoryCLI).Infof(format, args...)
}

// CLIDebug logs debug to the cli category
func CLIDebug(format string, args ...interface{}) {
	Get(CategoryCLI).Debugf(format, args...)
}
