package changes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlens/prlens/internal/adapters/outbound/changes"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirSource_CollectsSourceFilesSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "web/index.ts", "const a = 1\n")
	writeFile(t, root, "app/main.py", "x = 1\n")
	writeFile(t, root, "README.md", "# readme\n")

	got, err := changes.NewDirSource().Changes(root)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "app/main.py", got[0].Path)
	assert.Equal(t, "x = 1\n", got[0].Content)
	assert.Equal(t, "web/index.ts", got[1].Path)
}

func TestDirSource_SkipsVendoredTrees(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/lib/index.ts", "const a = 1\n")
	writeFile(t, root, "vendor/pkg/x.py", "x = 1\n")
	writeFile(t, root, "__pycache__/x.py", "x = 1\n")
	writeFile(t, root, "src/ok.py", "x = 1\n")

	got, err := changes.NewDirSource().Changes(root)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "src/ok.py", got[0].Path)
}

func TestDirSource_EmptyTree(t *testing.T) {
	got, err := changes.NewDirSource().Changes(t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, got)
}
