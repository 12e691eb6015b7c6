// SPDX-License-Identifier: EPL-2.0

package config

import (
	"log/slog"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDir = "dcadec"

// PathResolver locates configuration and cache files
type PathResolver interface {
	ConfigPaths(filename string) []string
	CachePath(purpose string) string
}

// XDGDirs provides XDG Base Directory compliant paths for dcadec
type XDGDirs struct{}

// NewXDGDirs creates a new XDG directory resolver
func NewXDGDirs() *XDGDirs {
	return &XDGDirs{}
}

// ConfigPaths returns prioritized paths where config files can be found:
// the user config dir first, then the system config dirs.
func (x *XDGDirs) ConfigPaths(filename string) []string {
	paths := []string{filepath.Join(xdg.ConfigHome, appDir, filename)}
	for _, dir := range xdg.ConfigDirs {
		paths = append(paths, filepath.Join(dir, appDir, filename))
	}

	slog.Debug("generated config paths", "filename", filename, "total_paths", len(paths))
	return paths
}

// CachePath returns the cache directory for a specific purpose
func (x *XDGDirs) CachePath(purpose string) string {
	return filepath.Join(xdg.CacheHome, appDir, purpose)
}

// StaticPaths is a PathResolver over fixed directories, used when the
// config location is given explicitly.
type StaticPaths struct {
	ConfigDirs []string
	CacheDir   string
}

func (s StaticPaths) ConfigPaths(filename string) []string {
	paths := make([]string, 0, len(s.ConfigDirs))
	for _, dir := range s.ConfigDirs {
		paths = append(paths, filepath.Join(dir, filename))
	}
	return paths
}

func (s StaticPaths) CachePath(purpose string) string {
	return filepath.Join(s.CacheDir, purpose)
}
