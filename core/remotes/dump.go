package remotes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	coreerrors "github.com/arpitjain799/jsonschema/core/errors"
	"github.com/arpitjain799/jsonschema/core/fsx"
)

// Dump copies the remote fixture tree at root into outDir. An existing
// non-empty target is refused unless update is set, in which case the target
// is removed wholesale first; refusal never deletes anything.
func Dump(root, outDir string, update bool) error {
	nonEmpty, err := fsx.DirNonEmpty(outDir)
	if err != nil {
		return coreerrors.Wrap(err, coreerrors.CategoryIOFailure, "")
	}
	if nonEmpty {
		if !update {
			return coreerrors.New(
				fmt.Sprintf("target %s already exists and is not empty", outDir),
				coreerrors.CategoryConflict,
				"pass --update to replace the target wholesale",
			)
		}
		if err := os.RemoveAll(outDir); err != nil {
			return coreerrors.Wrap(fmt.Errorf("remove target: %w", err), coreerrors.CategoryIOFailure, "")
		}
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		target := filepath.Join(outDir, rel)
		if err := fsx.EnsureDir(filepath.Dir(target)); err != nil {
			return err
		}
		return fsx.WriteFileAtomic(target, content, 0o644)
	})
	if err != nil {
		return coreerrors.Wrap(fmt.Errorf("dump %s: %w", root, err), coreerrors.CategoryIOFailure, "")
	}
	return nil
}
