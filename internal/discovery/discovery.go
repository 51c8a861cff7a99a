// Package discovery expands directory arguments into image playlists.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mward/glance/internal/errors"
)

// imageExtensions lists the file extensions the decode workers can
// handle. Everything else in a directory is skipped silently.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether path has a decodable image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// FindImageFiles finds image files directly inside dir, sorted
// alphabetically by filename. Hidden files and subdirectories are
// skipped.
func FindImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.NewPathError("cannot read directory " + dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if IsImageFile(name) {
			files = append(files, filepath.Join(dir, name))
		}
	}

	if len(files) == 0 {
		return nil, errors.NewPathError("no image files found in " + dir)
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}
