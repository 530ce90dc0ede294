package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/janisto/echo-registration/internal/platform/timeutil"
)

var (
	loggerOnce sync.Once
	baseLogger *slog.Logger
	level      = new(slog.LevelVar)
)

const (
	levelCritical  = slog.LevelError + 4
	levelAlert     = slog.LevelError + 8
	levelEmergency = slog.LevelError + 12
)

// severityNames maps slog levels to Cloud Logging severity strings.
var severityNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
	levelCritical:   "CRITICAL",
	levelAlert:      "ALERT",
	levelEmergency:  "EMERGENCY",
}

// gcpHandler forces UTC record times before delegating, so the JSON output
// carries Cloud Logging friendly timestamps.
type gcpHandler struct {
	slog.Handler
}

func (h *gcpHandler) Handle(ctx context.Context, r slog.Record) error {
	r.Time = r.Time.UTC()
	return h.Handler.Handle(ctx, r)
}

func (h *gcpHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &gcpHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *gcpHandler) WithGroup(name string) slog.Handler {
	return &gcpHandler{Handler: h.Handler.WithGroup(name)}
}

// replaceAttr renames the built-in keys to timestamp, severity and message.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		a.Key = "timestamp"
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(timeutil.RFC3339Micros))
	case slog.LevelKey:
		a.Key = "severity"
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			if name, found := severityNames[lvl]; found {
				a.Value = slog.StringValue(name)
			}
		}
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

func newHandler(w io.Writer, leveler slog.Leveler) slog.Handler {
	return &gcpHandler{Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       leveler,
		ReplaceAttr: replaceAttr,
	})}
}

// Logger returns the process-wide slog.Logger instance.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		baseLogger = slog.New(newHandler(os.Stdout, level))
	})
	return baseLogger
}

// SetLevel changes the minimum level of the process-wide logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// ParseLevel accepts slog level names as well as the Cloud Logging severity
// names used in the output.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "CRITICAL":
		return levelCritical, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
}
