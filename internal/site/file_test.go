package site

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFile_MarkdownIsPage(t *testing.T) {
	f := NewFile("guide/start.md", "docs", "site", true)
	require.True(t, f.Page)
	require.False(t, f.ModulePage)
	require.Equal(t, filepath.Join("docs", "guide", "start.md"), f.AbsSrcPath)
}

func TestNewFile_YAMLIsNotPageUnderGenericRule(t *testing.T) {
	f := NewFile("3/modules/foo.yml", "docs", "site", true)
	require.False(t, f.Page)
	require.Equal(t, "3/modules/foo.yml", f.DestPath)
}

func TestDerivePaths_DirectoryURLs(t *testing.T) {
	cases := []struct {
		src      string
		dest     string
		url      string
	}{
		{"index.md", "index.html", "."},
		{"guide/start.md", "guide/start/index.html", "guide/start/"},
		{"guide/index.md", "guide/index.html", "guide/"},
		{"guide/README.md", "guide/index.html", "guide/"},
	}
	for _, tc := range cases {
		f := NewFile(tc.src, "docs", "site", true)
		require.Equal(t, tc.dest, f.DestPath, "dest for %s", tc.src)
		require.Equal(t, tc.url, f.URL, "url for %s", tc.src)
	}
}

func TestDerivePaths_WithoutDirectoryURLs(t *testing.T) {
	f := NewFile("guide/start.md", "docs", "site", false)
	require.Equal(t, "guide/start.html", f.DestPath)
	require.Equal(t, "guide/start.html", f.URL)
}

func TestReclassified_TurnsYAMLIntoPage(t *testing.T) {
	f := NewFile("3/modules/foo.yml", "docs", "site", true)
	require.False(t, f.Page)

	ext := f.Reclassified(true, "site", true)
	require.True(t, ext.Page)
	require.True(t, ext.ModulePage)
	require.Equal(t, "3/modules/foo/index.html", ext.DestPath)
	require.Equal(t, "3/modules/foo/", ext.URL)
	// Source identity is preserved.
	require.Equal(t, f.SrcPath, ext.SrcPath)
	require.Equal(t, f.AbsSrcPath, ext.AbsSrcPath)
}

func TestReclassified_LeavesOrdinaryAssetsAlone(t *testing.T) {
	f := NewFile("img/logo.png", "docs", "site", true)
	ext := f.Reclassified(false, "site", true)
	require.False(t, ext.Page)
	require.Equal(t, "img/logo.png", ext.DestPath)
}
