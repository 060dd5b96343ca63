package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Discover walks the docs directory and produces a descriptor per regular
// file, in lexical order. Dotfiles and dot-directories are skipped, the way
// documentation site generators conventionally do.
func Discover(docsDir, siteDir string, useDirectoryURLs bool) ([]File, error) {
	if _, err := os.Stat(docsDir); err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	}

	var files []File
	err := filepath.WalkDir(docsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != docsDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(docsDir, p)
		if err != nil {
			return err
		}
		files = append(files, NewFile(filepath.ToSlash(rel), docsDir, siteDir, useDirectoryURLs))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs directory: %w", err)
	}
	return files, nil
}
