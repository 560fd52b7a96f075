// Package script provides the scripted action handler: a TOML app
// configuration mapping action names to Lua script files, and a handler
// that executes each script in a fresh, sandboxed interpreter.
//
// Scripts see a single global table `app`:
//
//	app.get(key)        read a value from the store snapshot
//	app.set(key, value) buffer a value to write back after the run
//	app.log(message)    buffer a log line, emitted after the run
//	app.payload         table of payload values passed with the action
//
// Scripts are app-owned and semi-trusted, but the surface is stripped
// anyway: no filesystem, no process access, no module loading, no
// introspection, no widget or node references. Only store exchange.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/go-veneer/veneer/pkg/errors"
)

// Meta is the app metadata from the [app] section.
type Meta struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// appToml is the raw file structure.
//
//	[app]
//	name = "Blend Calculator"
//	version = "1.0"
//
//	[actions]
//	calculate_blend = "actions/calculate_blend.lua"
type appToml struct {
	App     Meta              `toml:"app"`
	Actions map[string]string `toml:"actions"`
}

// AppConfig is a loaded app configuration with resolved script paths.
// App logic is deliberately separate from skin packs: skins are purely
// aesthetic, scripts live in the app directory.
type AppConfig struct {
	// Meta is the app metadata.
	Meta Meta

	scripts map[string]string
	baseDir string
}

// LoadAppConfig reads an app.toml file and resolves every referenced
// script path relative to the file's directory. A missing script file is
// a fatal configuration error: loading fails before any handler is
// constructed.
func LoadAppConfig(path string) (*AppConfig, error) {
	var raw appToml
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, &errors.Error{
			Op:   "script.LoadAppConfig",
			Kind: errors.KindConfig,
			Err:  fmt.Errorf("failed to parse %s: %w", path, err),
		}
	}

	baseDir := filepath.Dir(path)
	scripts := make(map[string]string, len(raw.Actions))
	for name, rel := range raw.Actions {
		sp := filepath.Join(baseDir, rel)
		if _, err := os.Stat(sp); err != nil {
			return nil, &errors.Error{
				Op:     "script.LoadAppConfig",
				Kind:   errors.KindConfig,
				Action: name,
				Err:    fmt.Errorf("script for action %q not found: %s", name, sp),
			}
		}
		scripts[name] = sp
	}

	return &AppConfig{Meta: raw.App, scripts: scripts, baseDir: baseDir}, nil
}

// ScriptFor returns the resolved script path for an action.
func (c *AppConfig) ScriptFor(name string) (string, bool) {
	p, ok := c.scripts[name]
	return p, ok
}

// HasAction reports whether the action is defined.
func (c *AppConfig) HasAction(name string) bool {
	_, ok := c.scripts[name]
	return ok
}

// ActionNames returns the defined action names in sorted order.
func (c *AppConfig) ActionNames() []string {
	names := make([]string, 0, len(c.scripts))
	for name := range c.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BaseDir returns the app directory, where app.toml lives.
func (c *AppConfig) BaseDir() string {
	return c.baseDir
}
