package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes leveled, timestamped lines to a writer.
// Lines look like "[HH:MM:SS] [LEVEL] message". Level tags are colored when the
// writer is a terminal. A nil *ConsoleLogger or nil writer discards everything.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a logger at the given level (trace, debug, info, warn, error).
// Unknown or empty levels fall back to info.
func NewConsoleLogger(writer io.Writer, logLevel string, noColor bool) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       logLevelToInt(normalizeLogLevel(logLevel)),
		colorOutput: !noColor && isTerminal(writer),
		now:         time.Now,
	}
}

// isTerminal reports whether w is a TTY that should get color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) LogTrace(message string) { cl.logWithLevel(levelTrace, "TRACE", message) }
func (cl *ConsoleLogger) LogDebug(message string) { cl.logWithLevel(levelDebug, "DEBUG", message) }
func (cl *ConsoleLogger) LogInfo(message string) { cl.logWithLevel(levelInfo, "INFO", message) }
func (cl *ConsoleLogger) LogWarn(message string) { cl.logWithLevel(levelWarn, "WARN", message) }
func (cl *ConsoleLogger) LogError(message string) { cl.logWithLevel(levelError, "ERROR", message) }

func (cl *ConsoleLogger) logWithLevel(level int, tag, message string) {
	if cl == nil || cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	if cl.colorOutput {
		tag = levelColor(level).Sprint(tag)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, tag, message)
}

func levelColor(level int) *color.Color {
	switch level {
	case levelTrace:
		return color.New(color.FgHiBlack)
	case levelDebug:
		return color.New(color.FgCyan)
	case levelWarn:
		return color.New(color.FgYellow)
	case levelError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}
