package playlist

import (
	"os"

	"github.com/mward/glance/internal/discovery"
	"github.com/mward/glance/internal/errors"
)

// Build creates playlist entries from command line arguments. The "-"
// argument selects the shared stdin stream; it may appear more than once,
// but only one such entry ever holds the stream claim at a time. A
// directory argument expands in place to the image files it contains.
func Build(args []string) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			continue
		}
		if arg != StdinName {
			if info, err := os.Stat(arg); err == nil && info.IsDir() {
				files, err := discovery.FindImageFiles(arg)
				if err != nil {
					return nil, err
				}
				for _, f := range files {
					entries = append(entries, &Entry{Name: f})
				}
				continue
			}
		}
		entries = append(entries, &Entry{
			Name:  arg,
			Stdin: arg == StdinName,
		})
	}

	if len(entries) == 0 {
		return nil, errors.NewPathError("no images in playlist")
	}
	return entries, nil
}
