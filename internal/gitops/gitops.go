// Package gitops shells out to git so a ledger directory can keep its own
// change history. Every mutating command may auto-commit the ledger state.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a ledger directory under git control.
type Repo struct {
	Dir string
}

// Init initializes a git repository at dir and returns it.
func Init(dir string) (Repo, error) {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return Repo{}, fmt.Errorf("git init: %s: %w", out, err)
	}
	return Repo{Dir: dir}, nil
}

// Open returns the repo at dir without touching disk.
func Open(dir string) Repo {
	return Repo{Dir: dir}
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// HasChanges reports whether the worktree has anything to commit.
func (r Repo) HasChanges() (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = r.Dir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages everything and creates a commit, returning the short
// commit hash. An unchanged worktree returns an empty hash and no error.
func (r Repo) CommitAll(message, authorName, authorEmail string) (string, error) {
	dirty, err := r.HasChanges()
	if err != nil {
		return "", err
	}
	if !dirty {
		return "", nil
	}

	add := exec.Command("git", "add", "-A")
	add.Dir = r.Dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)
	commit := exec.Command("git", "commit", "-m", message, "--author", author)
	commit.Dir = r.Dir
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = r.Dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
