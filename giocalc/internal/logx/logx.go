package logx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"pkt.systems/pslog"
)

// New returns a console logger writing to w at the given minimum level.
func New(w io.Writer, level string) (pslog.Logger, error) {
	opts := pslog.Options{Mode: pslog.ModeConsole}
	if err := setLevel(&opts, level); err != nil {
		return nil, err
	}
	return pslog.NewWithOptions(w, opts), nil
}

func setLevel(opts *pslog.Options, level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "warn":
		opts.MinLevel = pslog.WarnLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

// WithUI annotates the logger with the presentation layer in use.
func WithUI(ctx context.Context, ui string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if ui != "" {
		log = log.With("ui", ui)
	}
	return log
}
