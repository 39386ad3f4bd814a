// Package changes provides the input-boundary adapters that build FileChange
// sets, either from a git worktree diff or from a plain directory walk.
package changes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitdiff "github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/prlens/prlens/internal/domain"
)

// GitSource implements domain.ChangeSource using go-git: every file that
// differs from HEAD (staged or not) becomes one FileChange with diff hunks.
type GitSource struct{}

func NewGitSource() *GitSource {
	return &GitSource{}
}

// IsGitRepo reports whether projectPath is inside a git repository.
func (s *GitSource) IsGitRepo(projectPath string) bool {
	_, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// CommitHash returns the hash of HEAD.
func (s *GitSource) CommitHash(projectPath string) (string, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func (s *GitSource) Changes(projectPath string) ([]domain.FileChange, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("reading worktree status: %w", err)
	}

	headTree := headTreeOrNil(repo)

	var changes []domain.FileChange
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		if st.Worktree == git.Deleted || st.Staging == git.Deleted {
			continue
		}

		content, err := os.ReadFile(filepath.Join(wt.Filesystem.Root(), path))
		if err != nil {
			continue
		}

		old := ""
		if headTree != nil {
			if f, ferr := headTree.File(path); ferr == nil {
				old, _ = f.Contents()
			}
		}

		changes = append(changes, domain.FileChange{
			Path:    path,
			Content: string(content),
			Hunks:   computeHunks(old, string(content)),
		})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

func headTreeOrNil(repo *git.Repository) *object.Tree {
	head, err := repo.Head()
	if err != nil {
		return nil
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil
	}
	return tree
}

// computeHunks derives changed regions in new-file line numbers. Removals
// are anchored at the line where the removed text used to be.
func computeHunks(old, new string) []domain.Hunk {
	if old == new {
		return nil
	}

	var hunks []domain.Hunk
	line := 1
	for _, d := range gitdiff.Do(old, new) {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			line += n
		case diffmatchpatch.DiffInsert:
			end := line + n
			if n > 0 {
				end = line + n - 1
			}
			hunks = append(hunks, domain.Hunk{StartLine: line, EndLine: end, Kind: domain.HunkAdded})
			line += n
		case diffmatchpatch.DiffDelete:
			hunks = append(hunks, domain.Hunk{StartLine: line, EndLine: line, Kind: domain.HunkRemoved})
		}
	}
	return hunks
}
