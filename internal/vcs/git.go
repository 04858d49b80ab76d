package vcs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/pkgforge/internal/logfields"
)

// GitVCS records releases as commits and annotated tags via go-git.
type GitVCS struct {
	path string
	repo *git.Repository
}

// NewGitVCS opens the git repository at path.
func NewGitVCS(path string) (*GitVCS, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, &NotARepositoryError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open git repository %s: %w", path, err)
	}
	return &GitVCS{path: path, repo: repo}, nil
}

// Path returns the repository root.
func (g *GitVCS) Path() string { return g.path }

// Record commits all pending changes with the release message and returns the
// revision hash. A clean worktree records the current HEAD instead of
// creating an empty commit.
func (g *GitVCS) Record(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	w, err := g.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	status, err := w.Status()
	if err != nil {
		return "", fmt.Errorf("read worktree status: %w", err)
	}

	if status.IsClean() {
		head, err := g.repo.Head()
		if err != nil {
			return "", &RecordError{Path: g.path, Err: err}
		}
		rev := head.Hash().String()
		slog.Debug("Worktree clean, recording HEAD", logfields.Revision(rev))
		return rev, nil
	}

	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", &RecordError{Path: g.path, Err: err}
	}
	hash, err := w.Commit(message, &git.CommitOptions{Author: signature()})
	if err != nil {
		return "", &RecordError{Path: g.path, Err: err}
	}

	rev := hash.String()
	slog.Info("Recorded release commit", logfields.Revision(rev), logfields.Path(g.path))
	return rev, nil
}

// Tag creates an annotated tag on the current HEAD.
func (g *GitVCS) Tag(ctx context.Context, name, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	head, err := g.repo.Head()
	if err != nil {
		return &RecordError{Path: g.path, Err: err}
	}
	_, err = g.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Message: message,
		Tagger:  signature(),
	})
	if err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return &TagExistsError{Tag: name, Err: err}
		}
		return &RecordError{Path: g.path, Err: err}
	}

	slog.Info("Tagged release", slog.String("tag", name), logfields.Path(g.path))
	return nil
}

func signature() *object.Signature {
	return &object.Signature{
		Name:  "pkgforge",
		Email: "pkgforge@localhost",
		When:  time.Now(),
	}
}
