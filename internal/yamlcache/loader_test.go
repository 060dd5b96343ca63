package yamlcache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesNestedStructures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.yml")
	content := "name: ban\nchmodes:\n  chars:\n    - letter: b\n      name: ban\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loader := NewLoader()
	v, err := loader.Load(path)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "ban", m["name"])

	chmodes := m["chmodes"].(map[string]any)
	chars := chmodes["chars"].([]any)
	require.Len(t, chars, 1)
	require.Equal(t, "b", chars[0].(map[string]any)["letter"])
}

func TestLoad_SamePathTwice_ReadsFileOnce(t *testing.T) {
	readCount := 0
	loader := NewLoader(WithReadFile(func(path string) ([]byte, error) {
		readCount++
		return []byte("key: value\n"), nil
	}))

	first, err := loader.Load("a.yml")
	require.NoError(t, err)
	second, err := loader.Load("a.yml")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, readCount)
	require.Equal(t, int64(1), loader.Reads())
}

func TestLoad_DistinctPaths_ReadSeparately(t *testing.T) {
	loader := NewLoader(WithReadFile(func(path string) ([]byte, error) {
		return []byte(fmt.Sprintf("path: %s\n", path)), nil
	}))

	a, err := loader.Load("a.yml")
	require.NoError(t, err)
	b, err := loader.Load("b.yml")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.Equal(t, int64(2), loader.Reads())
}

func TestLoad_MissingFile_ReturnsError(t *testing.T) {
	loader := NewLoader()
	_, err := loader.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML_ReturnsErrorAndDoesNotCache(t *testing.T) {
	loader := NewLoader(WithReadFile(func(path string) ([]byte, error) {
		return []byte("key: [unclosed\n"), nil
	}))

	_, err := loader.Load("bad.yml")
	require.Error(t, err)
	require.Zero(t, loader.Size())
}

func TestLoad_EvictsLeastRecentlyUsed(t *testing.T) {
	reads := map[string]int{}
	loader := NewLoader(
		WithCapacity(2),
		WithReadFile(func(path string) ([]byte, error) {
			reads[path]++
			return []byte("ok: true\n"), nil
		}),
	)

	_, err := loader.Load("a.yml")
	require.NoError(t, err)
	_, err = loader.Load("b.yml")
	require.NoError(t, err)

	// Touch a so that b becomes the eviction candidate.
	_, err = loader.Load("a.yml")
	require.NoError(t, err)

	_, err = loader.Load("c.yml")
	require.NoError(t, err)

	_, err = loader.Load("b.yml")
	require.NoError(t, err)

	require.Equal(t, 1, reads["a.yml"])
	require.Equal(t, 2, reads["b.yml"])
	require.Equal(t, 1, reads["c.yml"])
}

func TestLoadMap_NonMappingTopLevel_ReturnsError(t *testing.T) {
	loader := NewLoader(WithReadFile(func(path string) ([]byte, error) {
		return []byte("- just\n- a\n- list\n"), nil
	}))

	_, err := loader.LoadMap("list.yml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected a mapping")
}
