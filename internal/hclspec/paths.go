package hclspec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/colengine/internal/ctxlog"
)

// ResolvePaths returns every .hcl file named by paths, walking directories
// recursively. A path naming a file must have the .hcl extension. Each file
// is returned once, in discovery order.
func ResolvePaths(ctx context.Context, paths ...string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("definition path not found: %s", path)
		}
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) != ".hcl" {
				return nil, fmt.Errorf("specified file is not an .hcl file: %s", path)
			}
			logger.Debug("Path is a single file.", "file", path)
			add(path)
			continue
		}

		logger.Debug("Path is a directory, scanning for HCL files.", "directory", path)
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
