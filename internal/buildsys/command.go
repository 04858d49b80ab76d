package buildsys

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/pkgforge/internal/config"
	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

func init() {
	Register("command", func(cfg *config.Config) (BuildSystem, error) {
		if cfg.Build.Command == "" {
			return nil, fmt.Errorf("command build system requires build.command to be set")
		}
		return &CommandBuildSystem{command: cfg.Build.Command}, nil
	})
}

// CommandBuildSystem runs a configured build command in the package working
// directory, with the resolved environment activated on top of the process
// environment. The command sees the build and install locations through
// PKGFORGE_* variables rather than arguments, so any script or make wrapper
// works unchanged.
type CommandBuildSystem struct {
	command string
}

func (s *CommandBuildSystem) Name() string { return "command" }

// Build runs the build command for one variant. A non-zero exit is returned
// as a CommandFailedError carrying captured output.
func (s *CommandBuildSystem) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	parts := strings.Fields(s.command)
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = req.WorkingDir

	env := append(os.Environ(), req.Context.Environ()...)
	env = append(env,
		"PKGFORGE_BUILD_PATH="+req.BuildPath,
		fmt.Sprintf("PKGFORGE_VARIANT_INDEX=%d", req.Variant.Index),
	)
	if req.InstallPath != "" {
		env = append(env, "PKGFORGE_INSTALL_PATH="+req.InstallPath)
	}
	cmd.Env = env

	slog.Debug("Running build command",
		slog.String("command", s.command),
		logfields.Variant(req.Variant.Index),
		logfields.Path(req.BuildPath))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, &CommandFailedError{
			Command: s.command,
			Output:  string(output),
			Err:     err,
		}
	}
	return &BuildResult{ArtifactPath: req.BuildPath}, nil
}

// CommandFailedError reports a build command exiting unsuccessfully.
type CommandFailedError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("build command %q failed: %v", e.Command, e.Err)
}

func (e *CommandFailedError) Unwrap() error { return e.Err }
