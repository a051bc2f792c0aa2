package utils

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logMu  sync.RWMutex
	logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
)

// InitLogger configures the shared logger. format is "json" or "console".
func InitLogger(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logMu.Lock()
	logger = zerolog.New(out).With().Timestamp().Logger().Level(lvl)
	logMu.Unlock()
}

// Log returns the shared logger.
func Log() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	event(Log().Info(), requestID, module, action).Msg(message)
}

func LogWarn(requestID, module, action, message string) {
	event(Log().Warn(), requestID, module, action).Msg(message)
}

func LogError(requestID, module, action string, err error) {
	event(Log().Error(), requestID, module, action).Err(err).Send()
}

func event(e *zerolog.Event, requestID, module, action string) *zerolog.Event {
	return e.
		Str("module", strings.ToUpper(module)).
		Str("action", action).
		Str("request_id", strings.TrimSpace(requestID))
}
