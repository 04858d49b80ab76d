package hooks

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

func init() {
	Register("log", func(workingDir string, cfg *config.Config) (Hook, error) {
		return &LogHook{}, nil
	})
}

// LogHook writes each lifecycle event to the structured log.
type LogHook struct{}

func (h *LogHook) Name() string { return "log" }

func (h *LogHook) PreBuild(ctx context.Context, ev Event) error {
	h.log("Release pre-build", ev)
	return nil
}

func (h *LogHook) PreRelease(ctx context.Context, ev Event) error {
	h.log("Release pre-release", ev)
	return nil
}

func (h *LogHook) PostRelease(ctx context.Context, ev Event) error {
	h.log("Release post-release", ev)
	return nil
}

func (h *LogHook) log(msg string, ev Event) {
	attrs := []any{
		logfields.Package(ev.Package.Name),
		logfields.Version(ev.Package.Version),
	}
	if ev.Variant != nil {
		attrs = append(attrs, logfields.Variant(ev.Variant.Index))
	}
	if ev.Message != "" {
		attrs = append(attrs, slog.String("message", ev.Message))
	}
	if ev.Revision != "" {
		attrs = append(attrs, logfields.Revision(ev.Revision))
	}
	slog.Info(msg, attrs...)
}
