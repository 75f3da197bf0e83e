package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported audio file extensions.
const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
)

// IsMusicFile reports whether path has a playable extension.
func IsMusicFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == extMP3 || ext == extFLAC
}

// CollectPaths expands the given files and directories into a list of
// music files. Directories are walked recursively and their files sorted
// by path; explicit file arguments keep their order.
func CollectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !IsMusicFile(arg) {
				return nil, fmt.Errorf("%s: unsupported format", arg)
			}
			paths = append(paths, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Skip directories/files with errors, continue walking
				return nil //nolint:nilerr // intentionally skipping errors
			}
			if d.IsDir() || !IsMusicFile(path) {
				return nil
			}
			found = append(found, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
