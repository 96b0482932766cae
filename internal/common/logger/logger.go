package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AlibekovAA/profile-cards/internal/common/constants"
)

type Fields map[string]interface{}

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
	CRITICAL
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case CRITICAL:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Logger writes one line per entry:
//
//	[LEVEL] [service] [k=v ...] file.go:42 message
//
// The level is fixed at construction, so a Logger is safe to share.
type Logger struct {
	level   LogLevel
	out     *log.Logger
	service string
}

// New builds a logger for serviceName. An empty logDir keeps output on stdout
// only; otherwise app.log in logDir is rotated by lumberjack.
func New(logDir, serviceName, level string) (*Logger, error) {
	if logDir == "" {
		return &Logger{level: parseLevel(level), out: log.New(os.Stdout, "", log.LstdFlags), service: serviceName}, nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    constants.LoggerMaxSize,
		MaxBackups: constants.LoggerMaxBackups,
		MaxAge:     constants.LoggerMaxAge,
		Compress:   true,
	}

	return &Logger{
		level:   parseLevel(level),
		out:     log.New(io.MultiWriter(os.Stdout, rotating), "", log.LstdFlags),
		service: serviceName,
	}, nil
}

// NewWithWriter is used by tests that assert on log output.
func NewWithWriter(w io.Writer, serviceName, level string) *Logger {
	return &Logger{level: parseLevel(level), out: log.New(w, "", 0), service: serviceName}
}

func (l *Logger) ShouldLog(level LogLevel) bool {
	return level >= l.level
}

func (l *Logger) WithFields(ctx context.Context, fields Fields) *Entry {
	return &Entry{logger: l, ctx: ctx, fields: fields}
}

func (l *Logger) bare() *Entry {
	return &Entry{logger: l}
}

func (l *Logger) Debug(msg string)    { l.bare().emit(DEBUG, msg) }
func (l *Logger) Info(msg string)     { l.bare().emit(INFO, msg) }
func (l *Logger) Warn(msg string)     { l.bare().emit(WARNING, msg) }
func (l *Logger) Error(msg string)    { l.bare().emit(ERROR, msg) }
func (l *Logger) Critical(msg string) { l.bare().emit(CRITICAL, msg) }

func (l *Logger) Debugf(format string, args ...any)    { l.bare().emitf(DEBUG, format, args) }
func (l *Logger) Infof(format string, args ...any)     { l.bare().emitf(INFO, format, args) }
func (l *Logger) Warnf(format string, args ...any)     { l.bare().emitf(WARNING, format, args) }
func (l *Logger) Errorf(format string, args ...any)    { l.bare().emitf(ERROR, format, args) }
func (l *Logger) Criticalf(format string, args ...any) { l.bare().emitf(CRITICAL, format, args) }

func (l *Logger) Fatal(msg string) {
	l.bare().emit(CRITICAL, msg)
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, args ...any) {
	l.bare().emitf(CRITICAL, format, args)
	os.Exit(1)
}

type Entry struct {
	logger *Logger
	ctx    context.Context
	fields Fields
}

func (e *Entry) Debug(msg string)    { e.emit(DEBUG, msg) }
func (e *Entry) Info(msg string)     { e.emit(INFO, msg) }
func (e *Entry) Warn(msg string)     { e.emit(WARNING, msg) }
func (e *Entry) Error(msg string)    { e.emit(ERROR, msg) }
func (e *Entry) Critical(msg string) { e.emit(CRITICAL, msg) }

func (e *Entry) Debugf(format string, args ...any)    { e.emitf(DEBUG, format, args) }
func (e *Entry) Infof(format string, args ...any)     { e.emitf(INFO, format, args) }
func (e *Entry) Warnf(format string, args ...any)     { e.emitf(WARNING, format, args) }
func (e *Entry) Errorf(format string, args ...any)    { e.emitf(ERROR, format, args) }
func (e *Entry) Criticalf(format string, args ...any) { e.emitf(CRITICAL, format, args) }

func (e *Entry) emitf(level LogLevel, format string, args []any) {
	if !e.logger.ShouldLog(level) {
		return
	}
	e.emit(level, fmt.Sprintf(format, args...))
}

func (e *Entry) emit(level LogLevel, msg string) {
	if !e.logger.ShouldLog(level) {
		return
	}
	file, line := callerOutsideLogger()
	_ = e.logger.out.Output(0, formatLine(level, e.logger.service, traceID(e.ctx), e.fields, fmt.Sprintf("%s:%d", file, line), msg))
}

// formatLine renders fields sorted by key. An explicit trace_id field wins
// over the one carried by the context.
func formatLine(level LogLevel, service, ctxTraceID string, fields Fields, caller, msg string) string {
	var b strings.Builder
	b.WriteString("[" + level.String() + "]")
	if service != "" {
		b.WriteString(" [" + service + "]")
	}

	parts := make([]string, 0, len(fields)+1)
	if _, explicit := fields["trace_id"]; ctxTraceID != "" && !explicit {
		parts = append(parts, "trace_id="+ctxTraceID)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	if len(parts) > 0 {
		b.WriteString(" [" + strings.Join(parts, " ") + "]")
	}

	b.WriteString(" " + caller + " " + msg)
	return b.String()
}

func traceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(constants.TraceIDKey).(string)
	return id
}

func callerOutsideLogger() (string, int) {
	for skip := 2; skip < 8; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		if base := filepath.Base(file); base != "logger.go" {
			return base, line
		}
	}
	return "unknown", 0
}

func parseLevel(value string) LogLevel {
	switch strings.TrimSpace(strings.ToUpper(value)) {
	case "DEBUG":
		return DEBUG
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	case "CRITICAL":
		return CRITICAL
	default:
		return INFO
	}
}
