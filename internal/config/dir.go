// Package config resolves the wikimark configuration directory and loads
// config.yaml from it.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the configuration directory.
const AppName = "wikimark"

// Dir returns the wikimark configuration directory.
//
// Resolution:
//   - $WIKIMARK_CONFIG_HOME if set (explicit override)
//   - the XDG config home joined with wikimark ($XDG_CONFIG_HOME, else the
//     platform default such as ~/.config or %LOCALAPPDATA%)
func Dir() string {
	if dir := os.Getenv("WIKIMARK_CONFIG_HOME"); dir != "" {
		return dir
	}
	// xdg reads the environment once, at init.
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Path returns the location of config.yaml.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
