package process

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReporter(t *testing.T) {
	assert.IsType(t, &ConsoleReporter{}, NewReporter(true))
	assert.IsType(t, SilentReporter{}, NewReporter(false))
}

func TestConsoleReporter(t *testing.T) {
	var buf strings.Builder
	r := &ConsoleReporter{Out: &buf}

	r.Header("Building %d/%d...", 1, 3)
	r.SubHeader("Resolving")
	r.Line("resolved %d packages", 4)
	r.Transition(0, StateBuilding)

	out := buf.String()
	assert.Contains(t, out, "Building 1/3...")
	assert.Contains(t, out, strings.Repeat("-", 80))
	assert.Contains(t, out, "Resolving\n---------")
	assert.Contains(t, out, "resolved 4 packages\n")
	assert.Contains(t, out, "variant 0: building\n")
}

func TestSilentReporter(t *testing.T) {
	// All events are dropped without panicking.
	var r SilentReporter
	r.Header("x")
	r.SubHeader("x")
	r.Line("x")
	r.Skip("x")
	r.Transition(0, StateReleased)
}
