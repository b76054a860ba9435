// Package logging builds the simulator's diagnostic logger.
//
// Engine records carry the simulated tick under the "time" key, so the
// handler's own timestamp is renamed to "wall".
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// WallKey replaces slog's time key on every record.
const WallKey = "wall"

// Options selects what reaches the diagnostic stream and how it looks.
type Options struct {
	Level  string // debug, info, warn, error; unknown names mean info
	Format string // text (default) or json
	Quiet  bool   // errors only, wins over Debug
	Debug  bool   // ready queue dumps on every switch
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:       opts.level(),
		ReplaceAttr: renameWallClock,
	}
	if strings.EqualFold(opts.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func (o Options) level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Debug:
		return slog.LevelDebug
	default:
		return ParseLevel(o.Level)
	}
}

// ParseLevel accepts slog level names (case-insensitive, "warning" too).
// Returns slog.LevelInfo for unrecognized values.
func ParseLevel(s string) slog.Level {
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func renameWallClock(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Key = WallKey
	}
	return a
}

// ErrAttr wraps err for structured logging.
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
