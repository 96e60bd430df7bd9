package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "rsdisco.dev/pkg/rsdisco/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "lib.rs"), "fn main() {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.rs"), "fn child() {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.rs")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "lib.rs")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.rs")
		writeTestFile(t, child, "fn child() {}\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}
	})
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "lib.rs"), "")
	writeTestFile(t, filepath.Join(root, "README.md"), "")
	mustMkdir(t, filepath.Join(root, "tests"))
	writeTestFile(t, filepath.Join(root, "tests", "it.rs"), "")
	writeTestFile(t, filepath.Join(root, "tests", "generated_it.rs"), "")
	mustMkdir(t, filepath.Join(root, "target"))
	writeTestFile(t, filepath.Join(root, "target", "build.rs"), "")
	mustMkdir(t, filepath.Join(root, ".git"))
	writeTestFile(t, filepath.Join(root, ".git", "hook.rs"), "")

	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	t.Run("recursive pattern finds rust sources and skips build dirs", func(t *testing.T) {
		got, err := adapter.Get(ctx, []m.Path{m.Path(root + "/...")})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "lib.rs")),
			m.Path(filepath.Join(root, "tests", "generated_it.rs")),
			m.Path(filepath.Join(root, "tests", "it.rs")),
		}, got)
	})

	t.Run("plain directory is not recursive", func(t *testing.T) {
		got, err := adapter.Get(ctx, []m.Path{m.Path(root)})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "lib.rs"))}, got)
	})

	t.Run("exclude regex filters by base name", func(t *testing.T) {
		got, err := adapter.Get(ctx, []m.Path{m.Path(root + "/...")}, "^generated_")
		require.NoError(t, err)
		assert.NotContains(t, got, m.Path(filepath.Join(root, "tests", "generated_it.rs")))
		assert.Len(t, got, 2)
	})

	t.Run("single file and duplicates", func(t *testing.T) {
		file := m.Path(filepath.Join(root, "lib.rs"))
		got, err := adapter.Get(ctx, []m.Path{file, m.Path(root)})
		require.NoError(t, err)
		assert.Equal(t, []m.Path{file}, got)
	})

	t.Run("invalid exclude regex", func(t *testing.T) {
		_, err := adapter.Get(ctx, []m.Path{m.Path(root)}, "(")
		require.Error(t, err)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := adapter.Get(ctx, []m.Path{m.Path(filepath.Join(root, "nope"))})
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := adapter.Get(cancelled, []m.Path{m.Path(root)})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSplitPattern(t *testing.T) {
	tests := []struct {
		pattern   m.Path
		root      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"./src/...", "src", true},
		{"./src", "src", false},
		{"lib.rs", "lib.rs", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			root, recursive := splitPattern(tt.pattern)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "lib.rs")
	content := "#[test]\nfn it_works() {}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	crateDir := filepath.Join(root, "project")
	mustMkdir(t, crateDir)
	writeTestFile(t, filepath.Join(crateDir, "Cargo.toml"), "[package]\nname = \"project\"\n")

	subDir := filepath.Join(crateDir, "src", "nested")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	got, err := adapter.FindProjectRoot(m.Path(filepath.Join(subDir, "lib.rs")))
	require.NoError(t, err)
	assert.Equal(t, m.Path(crateDir), got)

	t.Run("no manifest", func(t *testing.T) {
		_, err := adapter.FindProjectRoot(m.Path(filepath.Join(t.TempDir(), "lib.rs")))
		require.Error(t, err)
	})
}

func TestLocalSourceFSAdapter_Glob(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "files"))
	mustMkdir(t, filepath.Join(root, "files", "dir.txt"))
	writeTestFile(t, filepath.Join(root, "files", "b.txt"), "")
	writeTestFile(t, filepath.Join(root, "files", "a.txt"), "")
	writeTestFile(t, filepath.Join(root, "files", "c.json"), "")

	got, err := adapter.Glob(filepath.Join(root, "files", "*.txt"))
	require.NoError(t, err)
	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "files", "a.txt")),
		m.Path(filepath.Join(root, "files", "b.txt")),
	}, got)

	_, err = adapter.Glob("[")
	require.Error(t, err)
}

func TestLocalSourceFSAdapter_WriteFileCreatesParents(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	target := filepath.Join(t.TempDir(), "out", "inventory.json")
	require.NoError(t, adapter.WriteFile(m.Path(target), []byte("{}"), 0o644))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/src/nested/lib.rs")

	rel, err := adapter.RelPath(base, target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "nested", "lib.rs"), string(rel))

	joined := adapter.JoinPath("/tmp", "project", "src", "lib.rs")
	assert.Equal(t, filepath.Join("/tmp", "project", "src", "lib.rs"), string(joined))
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
