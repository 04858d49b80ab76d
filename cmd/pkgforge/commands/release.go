package commands

import (
	"context"

	"git.home.luguber.info/inful/pkgforge/internal/process"
)

// ReleaseCmd implements the 'release' command.
type ReleaseCmd struct {
	Message    string `short:"m" help:"Release message recorded in version control"`
	Variants   []int  `help:"Select variants to release by index (default: all)"`
	AllowStale bool   `help:"Release even when a newer version is already released"`
}

func (r *ReleaseCmd) Run(_ *Global, root *CLI) error {
	a, err := assemble(root, true)
	if err != nil {
		return err
	}
	defer a.close()

	a.opts.AllowStaleRelease = r.AllowStale

	proc, err := process.Create("release", a.opts)
	if err != nil {
		return err
	}

	return proc.Release(context.Background(), process.ReleaseOptions{
		Message:  r.Message,
		Variants: r.Variants,
	})
}
