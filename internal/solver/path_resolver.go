package solver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
	"git.home.luguber.info/inful/pkgforge/internal/repository"
)

// PathResolver satisfies requirements by scanning filesystem package
// repositories. A requirement is "name" (latest version wins) or
// "name-<version>" (exact version). It performs no constraint solving; real
// dependency solving is delegated to an external resolver wired in by the
// embedding tooling.
type PathResolver struct{}

// NewPathResolver returns a filesystem-backed resolver.
func NewPathResolver() *PathResolver { return &PathResolver{} }

// Resolve selects one package per requirement from the request's search paths.
// The first search path containing the package wins, mirroring install-path
// precedence. A missing requirement yields StatusFailed, not an error: the
// caller persists and reports the failed context.
func (r *PathResolver) Resolve(ctx context.Context, req Request) (*ResolvedContext, error) {
	rctx := &ResolvedContext{
		Request:   req,
		Status:    StatusSolved,
		CreatedAt: time.Now().UTC(),
	}

	for _, requirement := range req.Requirements {
		if err := ctx.Err(); err != nil {
			rctx.Status = StatusAborted
			rctx.Failure = err.Error()
			return rctx, nil
		}

		pkg, ok := r.find(requirement, req.SearchPaths)
		if !ok {
			rctx.Status = StatusFailed
			rctx.Failure = fmt.Sprintf("no package satisfies %q", requirement)
			slog.Debug("Resolve failed", slog.String("requirement", requirement))
			return rctx, nil
		}
		rctx.Resolved = append(rctx.Resolved, pkg)
		slog.Debug("Resolved requirement",
			slog.String("requirement", requirement),
			logfields.Package(pkg.Name),
			logfields.Version(pkg.Version),
			logfields.Path(pkg.Root))
	}
	return rctx, nil
}

func (r *PathResolver) find(requirement string, searchPaths []string) (ResolvedPackage, bool) {
	name, wantVersion := splitRequirement(requirement)
	for _, root := range searchPaths {
		if wantVersion != "" {
			p := repository.InstallPath(root, name, wantVersion)
			if dirExists(p) {
				return ResolvedPackage{Name: name, Version: wantVersion, Root: p}, true
			}
			continue
		}
		latest, ok, err := repository.LatestVersion(root, name)
		if err != nil || !ok {
			// Unversioned layout: <root>/<name> with no version directories.
			p := repository.InstallPath(root, name, "")
			if err == nil && !ok && dirExists(p) {
				return ResolvedPackage{Name: name, Root: p}, true
			}
			continue
		}
		v := latest.Original()
		return ResolvedPackage{Name: name, Version: v, Root: repository.InstallPath(root, name, v)}, true
	}
	return ResolvedPackage{}, false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// splitRequirement parses "name" or "name-<version>" where the version is the
// suffix after the last '-' that starts with a digit.
func splitRequirement(requirement string) (name, version string) {
	i := strings.LastIndex(requirement, "-")
	if i <= 0 || i == len(requirement)-1 {
		return requirement, ""
	}
	suffix := requirement[i+1:]
	if suffix[0] >= '0' && suffix[0] <= '9' {
		return requirement[:i], suffix
	}
	return requirement, ""
}
