package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitSlog installs the process-wide logger: a tint handler on stderr at
// the requested level plus a debug-level JSON handler writing to a
// size-rotated file under the OS temp dir.
func InitSlog(stderrLevel slog.Level) {
	stderr := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      stderrLevel,
		TimeFormat: time.Kitchen,
	})
	file := slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   filepath.Join(os.TempDir(), "o2family-info.log"),
		MaxSize:    1,
		MaxBackups: 2,
	}, &slog.HandlerOptions{Level: slog.LevelDebug})

	slog.SetDefault(slog.New(fanoutHandler{stderr, file}))
}

// fans out records to every handler that is enabled for their level
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	errlist := []error{}
	for _, sub := range h {
		if !sub.Enabled(ctx, rec.Level) {
			continue
		}
		err := sub.Handle(ctx, rec.Clone())
		if err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithAttrs(attrs)
	}
	return out
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(h))
	for i, sub := range h {
		out[i] = sub.WithGroup(name)
	}
	return out
}
