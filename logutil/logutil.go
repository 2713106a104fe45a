// logutil.go - slog-Setup fuer strukturiertes Logging
package logutil

import (
	"io"
	"log/slog"
	"path/filepath"
)

const LevelTrace slog.Level = -8

// NewLogger erstellt einen Text-Logger, der Quellpositionen mitloggt
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.SourceKey:
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			case slog.LevelKey:
				if attr.Value.Any().(slog.Level) == LevelTrace {
					attr.Value = slog.StringValue("TRACE")
				}
			}

			return attr
		},
	}))
}

// Trace loggt auf Trace-Level
func Trace(msg string, args ...any) {
	slog.Log(nil, LevelTrace, msg, args...)
}
