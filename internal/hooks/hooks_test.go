package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/manifest"
)

func TestCreate_EmptyList(t *testing.T) {
	hooks, err := Create(nil, t.TempDir(), &config.Config{})
	require.NoError(t, err)
	assert.Empty(t, hooks)
}

func TestCreate_UnknownHook(t *testing.T) {
	_, err := Create([]string{"no-such-hook"}, t.TempDir(), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-hook")
}

func TestCreate_LogHook(t *testing.T) {
	hooks, err := Create([]string{"log"}, t.TempDir(), &config.Config{})
	require.NoError(t, err)
	require.Len(t, hooks, 1)
	assert.Equal(t, "log", hooks[0].Name())

	pkg := &manifest.Package{Name: "p", Version: "1.0.0"}
	v := manifest.Variant{Index: 0}
	ev := Event{Package: pkg, Variant: &v, Message: "m", Revision: "abc"}

	assert.NoError(t, hooks[0].PreBuild(context.Background(), ev))
	assert.NoError(t, hooks[0].PreRelease(context.Background(), ev))
	assert.NoError(t, hooks[0].PostRelease(context.Background(), ev))
}

func TestCreate_NATSRequiresURL(t *testing.T) {
	cfg := &config.Config{}
	require.NoError(t, cfg.ApplyDefaults())
	_, err := Create([]string{"nats"}, t.TempDir(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hooks.nats.url")
}

func TestCreate_PreservesOrder(t *testing.T) {
	Register("test-a", func(string, *config.Config) (Hook, error) { return &LogHook{}, nil })
	Register("test-b", func(string, *config.Config) (Hook, error) { return &LogHook{}, nil })

	hooks, err := Create([]string{"test-b", "log", "test-a"}, t.TempDir(), &config.Config{})
	require.NoError(t, err)
	require.Len(t, hooks, 3)
}
