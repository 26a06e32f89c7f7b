package internal

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	isatty "github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Named loggers share one registry so the CLI can relevel or retarget every
// package's logger at once. The run id set by SetLogID is prepended to each
// line, which keeps interleaved runs apart when they share a log file.

var (
	mu      sync.Mutex
	loggers = make(map[string]*LogHandle)
	runID   string
)

// LogHandle is a named logrus logger that formats its own entries.
type LogHandle struct {
	logrus.Logger

	name     string
	colorful bool
}

const logTimeFormat = "2006/01/02 15:04:05.000000"

func levelColor(lvl logrus.Level) int {
	switch lvl {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return 31 // red
	case logrus.WarnLevel:
		return 33 // yellow
	case logrus.InfoLevel:
		return 34 // blue
	}
	return 35 // magenta for trace and debug
}

// Format renders one entry as
//
//	<runid> time [name] LEVEL: message (func@file:line) fields
func (l *LogHandle) Format(e *logrus.Entry) ([]byte, error) {
	var sb strings.Builder
	if runID != "" {
		sb.WriteString(runID)
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Time.Format(logTimeFormat))
	sb.WriteString(" [")
	sb.WriteString(l.name)
	sb.WriteString("] ")

	lvlStr := strings.ToUpper(e.Level.String())
	if l.colorful {
		lvlStr = fmt.Sprintf("\033[1;%dm%s\033[0m", levelColor(e.Level), lvlStr)
	}
	sb.WriteString(lvlStr)
	sb.WriteString(": ")
	sb.WriteString(strings.TrimRight(e.Message, "\n"))

	if e.Caller != nil {
		fmt.Fprintf(&sb, " (%s@%s:%d)",
			ShortFuncName(e.Caller.Function), path.Base(e.Caller.File), e.Caller.Line)
	}
	if len(e.Data) != 0 {
		sb.WriteByte(' ')
		sb.WriteString(fmt.Sprint(e.Data))
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}

// ShortFuncName reduces a fully qualified function name to the bare method
// name, folding the ".funcN" and ".N" suffixes the runtime appends to
// closures.
func ShortFuncName(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	for {
		i := strings.LastIndexByte(full, '.')
		if i < 0 || i == len(full)-1 {
			return full
		}
		leaf := full[i+1:]
		if strings.HasPrefix(leaf, "func") || (leaf[0] >= '0' && leaf[0] <= '9') {
			full = full[:i]
			continue
		}
		return leaf
	}
}

func newLogger(name string) *LogHandle {
	l := &LogHandle{
		Logger:   *logrus.New(),
		name:     name,
		colorful: isatty.IsTerminal(os.Stderr.Fd()),
	}
	l.Formatter = l
	l.SetReportCaller(true)
	return l
}

// GetLogger returns the logger registered under name, creating it on first
// use.
func GetLogger(name string) *LogHandle {
	mu.Lock()
	defer mu.Unlock()

	if logger, ok := loggers[name]; ok {
		return logger
	}
	logger := newLogger(name)
	loggers[name] = logger
	return logger
}

// SetLogLevel applies lvl to every registered logger.
func SetLogLevel(lvl logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.Level = lvl
	}
}

// ParseLogLevel maps CLI level names to logrus levels, defaulting to info.
func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(s) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// DisableLogColor strips the ANSI level colors, e.g. when output is piped.
func DisableLogColor() {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.colorful = false
	}
}

// SetOutFile redirects every registered logger to a rotating log file under
// the given name. A symlink named `name` always points at the latest file.
func SetOutFile(name string) error {
	writer, err := rotatelogs.New(
		name+".%Y%m%d",
		rotatelogs.WithLinkName(name),
		rotatelogs.WithMaxAge(14*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.SetOutput(writer)
		logger.colorful = false
	}
	return nil
}

// SetOutput redirects every registered logger to w. Mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}

// SetLogID sets the per-run id prepended to every log line.
func SetLogID(id string) {
	mu.Lock()
	defer mu.Unlock()
	runID = id
}
