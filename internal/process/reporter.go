package process

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// VariantState labels a variant's position in the per-invocation state machine.
// Failed states are terminal for that variant within that invocation.
type VariantState string

const (
	StatePending              VariantState = "pending"
	StateEnvironmentResolving VariantState = "environment_resolving"
	StateEnvironmentFailed    VariantState = "environment_failed"
	StateEnvironmentReady     VariantState = "environment_ready"
	StateBuilding             VariantState = "building"
	StateBuildFailed          VariantState = "build_failed"
	StateBuildSucceeded       VariantState = "build_succeeded"
	StateInstalling           VariantState = "installing"
	StateInstallFailed        VariantState = "install_failed"
	StateInstalled            VariantState = "installed"
	StateReleasing            VariantState = "releasing"
	StateReleaseFailed        VariantState = "release_failed"
	StateReleased             VariantState = "released"
)

// Reporter receives structured progress events from the orchestration
// mechanics. The console implementation renders them for humans; the silent
// implementation drops them; tests inject recording implementations.
type Reporter interface {
	// Header opens a top-level section (double rule on the console).
	Header(format string, args ...any)

	// SubHeader opens a sub-section (underline on the console).
	SubHeader(format string, args ...any)

	// Line reports one line of progress.
	Line(format string, args ...any)

	// Skip reports a variant excluded by selection, not failed.
	Skip(format string, args ...any)

	// Transition reports a variant entering a state.
	Transition(variantIndex int, state VariantState)
}

// NewReporter returns the console reporter when verbose, the silent one otherwise.
func NewReporter(verbose bool) Reporter {
	if verbose {
		return &ConsoleReporter{Out: os.Stdout}
	}
	return SilentReporter{}
}

// ConsoleReporter renders progress to a writer.
type ConsoleReporter struct {
	Out io.Writer
}

const ruleWidth = 80

func (r *ConsoleReporter) Header(format string, args ...any) {
	txt := fmt.Sprintf(format, args...)
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, strings.Repeat("-", ruleWidth))
	fmt.Fprintln(r.Out, txt)
	fmt.Fprintln(r.Out, strings.Repeat("-", ruleWidth))
}

func (r *ConsoleReporter) SubHeader(format string, args ...any) {
	txt := fmt.Sprintf(format, args...)
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, txt)
	fmt.Fprintln(r.Out, strings.Repeat("-", len(txt)))
}

func (r *ConsoleReporter) Line(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}

func (r *ConsoleReporter) Skip(format string, args ...any) {
	r.Header(format, args...)
}

func (r *ConsoleReporter) Transition(variantIndex int, state VariantState) {
	fmt.Fprintf(r.Out, "variant %d: %s\n", variantIndex, state)
}

// SilentReporter drops all events. Used for non-verbose runs.
type SilentReporter struct{}

func (SilentReporter) Header(string, ...any)        {}
func (SilentReporter) SubHeader(string, ...any)     {}
func (SilentReporter) Line(string, ...any)          {}
func (SilentReporter) Skip(string, ...any)          {}
func (SilentReporter) Transition(int, VariantState) {}
