// Package fsutil provides file system helpers for locating configuration
// files.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches root for files whose name ends
// with extension and returns their paths in lexical order.
func FindFilesByExtension(root string, extension string) ([]string, error) {
	if extension == "" {
		return nil, fmt.Errorf("fsutil: empty extension")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths turns a mix of files and directories into a flat, duplicate-free
// list of files ending with extension. Directories are searched recursively;
// files are kept when their extension matches. Paths that do not exist are
// returned separately so the caller can decide how loud to be about them.
func ExpandPaths(paths []string, extension string) (files, missing []string, err error) {
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, statErr := os.Stat(p)
		if os.IsNotExist(statErr) {
			missing = append(missing, p)
			continue
		}
		if statErr != nil {
			return nil, nil, fmt.Errorf("fsutil: stat %s: %w", p, statErr)
		}
		if !info.IsDir() {
			if strings.HasSuffix(p, extension) {
				add(p)
			}
			continue
		}
		found, walkErr := FindFilesByExtension(p, extension)
		if walkErr != nil {
			return nil, nil, fmt.Errorf("fsutil: walk %s: %w", p, walkErr)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, missing, nil
}
