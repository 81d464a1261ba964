// Package pathutil holds path helpers shared by the stdkit commands.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// ErrUnsupportedHome is returned for ~user paths, which are not expanded.
var ErrUnsupportedHome = errors.New("cannot expand another user's home directory")

// Join joins elements and cleans the result. Empty elements are ignored.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// ExpandHome replaces a leading "~" or "~/" with the current user's home
// directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		if strings.HasPrefix(path, "~") {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedHome, path)
		}
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// IsWithin reports whether target is base or lies below it. Both paths are
// made absolute and cleaned first; symlinks are not resolved.
func IsWithin(base, target string) (bool, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", base, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, fmt.Errorf("resolve %s: %w", target, err)
	}

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return false, nil //nolint:nilerr // different volumes are simply not nested
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// ConfigFile returns the XDG config path for name under app, creating the
// parent directories.
func ConfigFile(app, name string) (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(app, name))
	if err != nil {
		return "", fmt.Errorf("config file %s: %w", name, err)
	}
	return path, nil
}

// DataFile returns the XDG data path for name under app, creating the parent
// directories.
func DataFile(app, name string) (string, error) {
	path, err := xdg.DataFile(filepath.Join(app, name))
	if err != nil {
		return "", fmt.Errorf("data file %s: %w", name, err)
	}
	return path, nil
}

// CacheDir returns the XDG cache directory for app. It is not created.
func CacheDir(app string) string {
	return filepath.Join(xdg.CacheHome, app)
}

// SearchConfigFile looks for name under app in the XDG config directories
// and returns the first existing match.
func SearchConfigFile(app, name string) (string, error) {
	path, err := xdg.SearchConfigFile(filepath.Join(app, name))
	if err != nil {
		return "", fmt.Errorf("search config %s: %w", name, err)
	}
	return path, nil
}
