package commands

import (
	"context"
	"fmt"
	"os"

	"git.home.luguber.info/inful/pkgforge/internal/manifest"
	"git.home.luguber.info/inful/pkgforge/internal/process"
	"git.home.luguber.info/inful/pkgforge/internal/solver"
)

// EnvCmd resolves a variant's build environment and prints it as shell
// environment lines, suitable for eval in a development shell.
type EnvCmd struct {
	Variant  int  `help:"Variant index to resolve (default: the sole or first variant)" default:"-1"`
	Snapshot bool `help:"Read the last build's environment snapshot instead of resolving"`
}

func (e *EnvCmd) Run(_ *Global, root *CLI) error {
	a, err := assemble(root, false)
	if err != nil {
		return err
	}
	defer a.close()

	h, err := process.NewHelper(a.opts)
	if err != nil {
		return err
	}

	v, err := e.selectVariant(h)
	if err != nil {
		return err
	}

	var rctx *solver.ResolvedContext
	if e.Snapshot {
		rctx, err = solver.LoadContext(h.BuildPath().SnapshotPath(v.Index))
		if err != nil {
			return fmt.Errorf("read environment snapshot (run a build first): %w", err)
		}
	} else {
		rctx, _, err = h.BuildEnvironment(context.Background(), v, process.BuildTypeLocal)
		if err != nil {
			return err
		}
	}

	for _, kv := range rctx.Environ() {
		fmt.Fprintln(os.Stdout, kv)
	}
	return nil
}

// selectVariant picks the requested variant, or the first one when no index
// was given. The implicit variant of a variant-less package has index -1.
func (e *EnvCmd) selectVariant(h *process.Helper) (manifest.Variant, error) {
	variants := h.Package().Variants()
	if e.Variant < 0 {
		return variants[0], nil
	}
	for _, v := range variants {
		if v.Index == e.Variant {
			return v, nil
		}
	}
	return manifest.Variant{}, &process.VariantNotFoundError{Indices: []int{e.Variant}}
}
