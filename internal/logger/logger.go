package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger handles dual-output logging (console + file)
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger // nil when no log file is configured
	logFile       *os.File
	verbose       bool
	minLevel      Level
}

var globalLogger *Logger

// New creates a logger.
// consoleOutput: where to write INFO and above (typically os.Stdout)
// logFilePath: file receiving every record with timestamp; empty disables it
// verbose: if true, show DEBUG logs on console as well
func New(consoleOutput io.Writer, logFilePath string, verbose bool) (*Logger, error) {
	l := &Logger{
		consoleLogger: log.New(consoleOutput, "", 0), // No prefix for clean console output
		verbose:       verbose,
		minLevel:      LevelInfo,
	}
	if verbose {
		l.minLevel = LevelDebug
	}

	if logFilePath == "" {
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l.logFile = logFile
	l.fileLogger = log.New(logFile, "", log.LstdFlags)

	return l, nil
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return &Logger{consoleLogger: log.New(io.Discard, "", 0), minLevel: LevelError + 1}
}

// Init initializes the global logger
func Init(consoleOutput io.Writer, logFilePath string, verbose bool) error {
	l, err := New(consoleOutput, logFilePath, verbose)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// Default returns the global logger, or a console-only logger on stdout
// when Init has not been called
func Default() *Logger {
	if globalLogger == nil {
		l, _ := New(os.Stdout, "", false)
		return l
	}
	return globalLogger
}

// Close closes the global log file
func Close() {
	if globalLogger != nil {
		globalLogger.Close()
	}
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l.logFile == nil {
		return nil
	}
	err := l.logFile.Close()
	l.logFile = nil
	l.fileLogger = nil
	return err
}

// Debug logs a debug message (file only, unless verbose)
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message (console + file)
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message (console + file)
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message (console + file)
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Debug logs a debug message through the global logger
func Debug(format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}
	globalLogger.log(LevelDebug, format, args...)
}

// Info logs an info message through the global logger
func Info(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	globalLogger.log(LevelInfo, format, args...)
}

// Warn logs a warning message through the global logger
func Warn(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("WARN: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelWarn, format, args...)
}

// Error logs an error message through the global logger
func Error(format string, args ...interface{}) {
	if globalLogger == nil {
		fmt.Printf("ERROR: "+format+"\n", args...)
		return
	}
	globalLogger.log(LevelError, format, args...)
}

// log handles the actual logging logic
func (l *Logger) log(level Level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Always log to file with timestamp and level (regardless of minLevel)
	if l.fileLogger != nil {
		l.fileLogger.Printf("[%s] %s", level.String(), message)
	}

	if level < l.minLevel {
		return
	}

	switch level {
	case LevelDebug:
		if l.verbose {
			l.consoleLogger.Printf("[DEBUG] %s", message)
		}
	case LevelInfo:
		l.consoleLogger.Printf("%s", message) // Clean output for INFO
	case LevelWarn:
		l.consoleLogger.Printf("⚠️  %s", message)
	case LevelError:
		l.consoleLogger.Printf("❌ %s", message)
	}
}

// LogFailure records the full error chain of a failed stage in the log file
// and a one-line summary on the console
func (l *Logger) LogFailure(stage string, err error) {
	if l.fileLogger != nil {
		timestamp := time.Now().Format("2006-01-02 15:04:05")
		l.fileLogger.Printf("[%s] [FAILURE] Stage: %s, Error: %+v", timestamp, stage, err)
	}
	if LevelError >= l.minLevel {
		l.consoleLogger.Printf("❌ %s failed: %v", stage, err)
	}
}

// FilePath returns the path to the log file
func (l *Logger) FilePath() string {
	if l.logFile != nil {
		return l.logFile.Name()
	}
	return ""
}

// GetLogFilePath returns the path to the current global log file
func GetLogFilePath() string {
	if globalLogger != nil {
		return globalLogger.FilePath()
	}
	return ""
}

// IsVerbose returns whether verbose logging is enabled
func IsVerbose() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.verbose
}
