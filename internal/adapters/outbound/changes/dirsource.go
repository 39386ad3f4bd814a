package changes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/prlens/prlens/internal/domain"
)

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"bin":          true,
	"testdata":     true,
	"__pycache__":  true,
}

var sourceExts = map[string]bool{
	".py":  true,
	".pyw": true,
	".pyi": true,
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// DirSource implements domain.ChangeSource for plain directories: every
// source file in the tree becomes one FileChange without diff hunks.
type DirSource struct{}

func NewDirSource() *DirSource {
	return &DirSource{}
}

func (s *DirSource) Changes(projectPath string) ([]domain.FileChange, error) {
	var changes []domain.FileChange

	err := filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExts[filepath.Ext(path)] {
			return nil
		}

		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil
		}

		rel, rerr := filepath.Rel(projectPath, path)
		if rerr != nil {
			rel = path
		}

		changes = append(changes, domain.FileChange{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", projectPath, err)
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}
