package commands

import (
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/inful/pkgforge/internal/buildsys"
	"git.home.luguber.info/inful/pkgforge/internal/hooks"
	"git.home.luguber.info/inful/pkgforge/internal/process"
)

// TypesCmd lists the registered build process types, build system backends
// and release hooks.
type TypesCmd struct{}

func (t *TypesCmd) Run(_ *Global, _ *CLI) error {
	fmt.Fprintf(os.Stdout, "Build processes: %s\n", strings.Join(process.ListProcessTypes(), ", "))
	fmt.Fprintf(os.Stdout, "Build systems:   %s\n", strings.Join(buildsys.Names(), ", "))
	fmt.Fprintf(os.Stdout, "Release hooks:   %s\n", strings.Join(hooks.Names(), ", "))
	return nil
}
