package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/retry"
)

func init() {
	Register("nats", func(workingDir string, cfg *config.Config) (Hook, error) {
		if cfg == nil || cfg.Hooks.NATS.URL == "" {
			return nil, fmt.Errorf("nats hook requires hooks.nats.url to be configured")
		}
		conn, err := nats.Connect(cfg.Hooks.NATS.URL,
			nats.Timeout(10*time.Second),
			nats.Name("pkgforge-release-hook"))
		if err != nil {
			return nil, fmt.Errorf("connect to NATS %s: %w", cfg.Hooks.NATS.URL, err)
		}
		return &NATSHook{conn: conn, subject: cfg.Hooks.NATS.Subject, backoff: retry.DefaultPolicy()}, nil
	})
}

// NATSHook publishes release lifecycle events to a NATS subject so external
// systems (notification fan-out, audit) can observe releases. Transient
// publish failures are retried; the caller treats a final failure as
// non-fatal either way.
type NATSHook struct {
	conn    *nats.Conn
	subject string
	backoff retry.Policy
}

// releaseEvent is the published wire form.
type releaseEvent struct {
	Event    string    `json:"event"`
	Package  string    `json:"package"`
	Version  string    `json:"version,omitempty"`
	Variant  *int      `json:"variant,omitempty"`
	Message  string    `json:"message,omitempty"`
	Revision string    `json:"revision,omitempty"`
	At       time.Time `json:"at"`
}

func (h *NATSHook) Name() string { return "nats" }

func (h *NATSHook) PreBuild(ctx context.Context, ev Event) error {
	return h.publish(ctx, "pre_build", ev)
}

func (h *NATSHook) PreRelease(ctx context.Context, ev Event) error {
	return h.publish(ctx, "pre_release", ev)
}

func (h *NATSHook) PostRelease(ctx context.Context, ev Event) error {
	return h.publish(ctx, "post_release", ev)
}

func (h *NATSHook) publish(ctx context.Context, event string, ev Event) error {
	payload := releaseEvent{
		Event:    event,
		Package:  ev.Package.Name,
		Version:  ev.Package.Version,
		Message:  ev.Message,
		Revision: ev.Revision,
		At:       time.Now().UTC(),
	}
	if ev.Variant != nil {
		idx := ev.Variant.Index
		payload.Variant = &idx
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode release event: %w", err)
	}
	err = retry.Do(ctx, h.backoff, func() error {
		return h.conn.Publish(h.subject+"."+event, data)
	})
	if err != nil {
		return fmt.Errorf("publish release event: %w", err)
	}
	return nil
}

// Close drains the connection. Safe to call once after the release finishes.
func (h *NATSHook) Close() {
	if h.conn != nil {
		h.conn.Close()
	}
}
