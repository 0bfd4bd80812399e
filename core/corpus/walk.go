package corpus

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Discover walks the given roots and returns every .json file in lexical
// order. A missing or unreadable root is an operational error; individual
// file problems surface later, at load time.
func Discover(roots ...string) ([]string, error) {
	var paths []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".json") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return paths, nil
}
