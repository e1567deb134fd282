package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filenames are the task file names looked up in each directory, in order of preference.
var Filenames = []string{"Kumadefile.yaml", "kumadefile.yaml", "kumade.yaml"}

// Discover finds the task file in cwd or the nearest parent directory that has one.
func Discover(cwd string) (string, error) {
	dir := cwd
	for {
		for _, name := range Filenames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", zerr.With(zerr.Wrap(domain.ErrTaskfileNotFound, ""), "cwd", cwd)
}
