package rnaseqprep

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands a leading ~/ to the current user's home directory.
// Other paths, including gs:// URLs, are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", pfx.Err(err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
