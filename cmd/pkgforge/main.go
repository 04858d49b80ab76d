package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pkgforge/cmd/pkgforge/commands"
	"git.home.luguber.info/inful/pkgforge/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("pkgforge"),
		kong.Description("Build and release packages into versioned package repositories."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("pkgforge %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
